package idl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/idlmap/pkg/types"
)

// aouPayload builds a full positional payload for the aou test class:
// seven declared fields plus the three bookkeeping slots.
func aouPayload() []any {
	return []any{
		float64(1),           // id
		"Example Consortium", // name
		"CONS",               // shortname
		nil,                  // parent_ou
		float64(1),           // ou_type
		true,                 // opac_visible
		nil,                  // children
		nil, nil, nil,        // isnew, ischanged, isdeleted
	}
}

func classedAou() map[string]any {
	return classify("aou", aouPayload())
}

func TestUnpackClassedArray(t *testing.T) {
	reg := newTestRegistry(t)

	out, err := reg.Unpack(classedAou())
	require.NoError(t, err)

	obj, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "aou", obj[ClassnameKey])
	assert.Equal(t, float64(1), obj["id"])
	assert.Equal(t, "Example Consortium", obj["name"])
	assert.Equal(t, "CONS", obj["shortname"])
	assert.Nil(t, obj["parent_ou"])
	assert.Equal(t, true, obj["opac_visible"])
	assert.Nil(t, obj["isdeleted"])

	// One key per field plus the class tag.
	assert.Len(t, obj, len(reg.Class("aou").Fields)+1)
}

func TestUnpackUnknownClassFailsClosed(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Unpack(classify("nope", []any{float64(1)}))
	assert.ErrorIs(t, err, types.ErrClassNotFound)

	// Same when the classed array is buried in a larger structure.
	_, err = reg.Unpack([]any{
		map[string]any{"inner": classify("nope", []any{})},
	})
	assert.ErrorIs(t, err, types.ErrClassNotFound)
}

func TestUnpackPayloadMustBeArray(t *testing.T) {
	reg := newTestRegistry(t)
	_, err := reg.Unpack(map[string]any{
		ClassKey:   "aou",
		PayloadKey: map[string]any{"id": float64(1)},
	})
	assert.ErrorIs(t, err, types.ErrClassNotFound)
}

func TestUnpackRecursesIntoChildren(t *testing.T) {
	reg := newTestRegistry(t)

	// A classed aout nested inside the ou_type slot of a classed aou.
	payload := aouPayload()
	payload[4] = classify("aout", []any{
		float64(1), "Consortium", float64(0), nil, // declared fields
		nil, nil, nil, // bookkeeping
	})

	out, err := reg.Unpack(map[string]any{
		"orgs": []any{classify("aou", payload)},
	})
	require.NoError(t, err)

	orgs := out.(map[string]any)["orgs"].([]any)
	org := orgs[0].(map[string]any)
	ouType := org["ou_type"].(map[string]any)
	assert.Equal(t, "aout", ouType[ClassnameKey])
	assert.Equal(t, "Consortium", ouType["name"])
}

func TestUnpackLeavesExpandedObjectsAlone(t *testing.T) {
	reg := newTestRegistry(t)

	once, err := reg.Unpack(classedAou())
	require.NoError(t, err)

	// An already-expanded object carries no positional payload, so a
	// second unpack only traverses children.
	twice, err := reg.Unpack(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestPackRoundTrip(t *testing.T) {
	reg := newTestRegistry(t)

	wire := map[string]any{
		"status":  "ok",
		"count":   float64(2),
		"results": []any{classedAou(), classedAou()},
	}

	unpacked, err := reg.Unpack(wire)
	require.NoError(t, err)
	repacked, err := reg.Pack(unpacked)
	require.NoError(t, err)
	assert.Equal(t, wire, repacked)

	// And the other direction.
	packed, err := reg.Pack(unpacked)
	require.NoError(t, err)
	unpackedAgain, err := reg.Unpack(packed)
	require.NoError(t, err)
	assert.Equal(t, unpacked, unpackedAgain)
}

func TestPackMissingFieldsBecomeNull(t *testing.T) {
	reg := newTestRegistry(t)

	out, err := reg.Pack(map[string]any{
		ClassnameKey: "aout",
		"id":         float64(7),
		"name":       "Branch",
		// depth, parent, and the bookkeeping fields are absent.
	})
	require.NoError(t, err)

	container := out.(map[string]any)
	assert.Equal(t, "aout", container[ClassKey])
	payload := container[PayloadKey].([]any)
	require.Len(t, payload, len(reg.Class("aout").Fields))
	assert.Equal(t, float64(7), payload[0])
	assert.Equal(t, "Branch", payload[1])
	assert.Nil(t, payload[2])
	assert.Nil(t, payload[3])
}

func TestPackUnknownClass(t *testing.T) {
	reg := newTestRegistry(t)
	_, err := reg.Pack(map[string]any{ClassnameKey: "nope", "id": float64(1)})
	assert.ErrorIs(t, err, types.ErrClassNotFound)
}

func TestCodecScalarsPassThrough(t *testing.T) {
	reg := newTestRegistry(t)

	for _, v := range []any{nil, true, "text", float64(3.5)} {
		out, err := reg.Unpack(v)
		require.NoError(t, err)
		assert.Equal(t, v, out)

		out, err = reg.Pack(v)
		require.NoError(t, err)
		assert.Equal(t, v, out)
	}
}
