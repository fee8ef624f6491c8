package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/idlmap/pkg/idl"
	"github.com/mesh-intelligence/idlmap/pkg/types"
)

const wireTestIDL = `<IDL xmlns="http://opensrf.org/spec/IDL/base/v1"
     xmlns:oils_persist="http://open-ils.org/spec/opensrf/IDL/persistence/v1"
     xmlns:reporter="http://open-ils.org/spec/opensrf/IDL/reporter/v1">
  <class id="aout" oils_persist:tablename="actor.org_unit_type">
    <fields oils_persist:primary="id">
      <field name="id" reporter:datatype="int"/>
      <field name="name" reporter:datatype="text"/>
    </fields>
  </class>
</IDL>`

// setTestRegistry installs a registry the way PersistentPreRunE does,
// restoring the previous one when the test ends.
func setTestRegistry(t *testing.T) {
	t.Helper()
	reg, err := idl.ParseString(wireTestIDL)
	require.NoError(t, err)
	prev := registry
	registry = reg
	t.Cleanup(func() { registry = prev })
}

func TestConvertWireValueUnpack(t *testing.T) {
	setTestRegistry(t)

	out, err := convertWireValue(
		[]byte(`{"__c": "aout", "__p": [1, "Consortium", null, null, null]}`), false)
	require.NoError(t, err)

	obj, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "aout", obj[idl.ClassnameKey])
	assert.Equal(t, float64(1), obj["id"])
	assert.Equal(t, "Consortium", obj["name"])
	assert.Nil(t, obj["isdeleted"])
}

func TestConvertWireValuePack(t *testing.T) {
	setTestRegistry(t)

	out, err := convertWireValue(
		[]byte(`{"_classname": "aout", "id": 7, "name": "Branch"}`), true)
	require.NoError(t, err)

	container, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "aout", container[idl.ClassKey])
	payload, ok := container[idl.PayloadKey].([]any)
	require.True(t, ok)
	require.Len(t, payload, 5)
	assert.Equal(t, float64(7), payload[0])
	assert.Equal(t, "Branch", payload[1])
}

func TestConvertWireValueErrors(t *testing.T) {
	setTestRegistry(t)

	_, err := convertWireValue([]byte(`{"__c": "nope"`), false)
	assert.Error(t, err)

	_, err = convertWireValue([]byte(`{"__c": "nope", "__p": []}`), false)
	assert.ErrorIs(t, err, types.ErrClassNotFound)

	_, err = convertWireValue([]byte(`{"_classname": "nope"}`), true)
	assert.ErrorIs(t, err, types.ErrClassNotFound)
}
