package idldb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/idlmap/pkg/types"
)

func TestKindForColumn(t *testing.T) {
	tests := []struct {
		typeName string
		want     columnKind
	}{
		{"BOOL", kindBool},
		{"boolean", kindBool},
		{"TEXT", kindText},
		{"VARCHAR", kindText},
		{"VARCHAR(80)", kindText},
		{"character varying(80)", kindText},
		{"TIMESTAMPTZ", kindText},
		{"timestamp with time zone", kindText},
		{"INT2", kindInt16},
		{"SMALLINT", kindInt16},
		{"INT4", kindInt32},
		{"integer", kindInt32},
		{"INT8", kindInt64},
		{"BIGINT", kindInt64},
		{"FLOAT4", kindFloat32},
		{"REAL", kindFloat32},
		{"FLOAT8", kindFloat64},
		{"double precision", kindFloat64},
		{"NUMERIC", kindFloat64},
	}
	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			kind, err := kindForColumn(tt.typeName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestKindForColumnUnsupported(t *testing.T) {
	for _, name := range []string{"", "BYTEA", "JSONB", "CIDR"} {
		_, err := kindForColumn(name)
		assert.ErrorIs(t, err, types.ErrUnsupportedColumnType, "type %q", name)
	}
}

func TestDestValueNullBecomesNil(t *testing.T) {
	// A NULL in any column kind decodes to nil, never to a zero value.
	for kind := kindBool; kind <= kindFloat64; kind++ {
		dest := scanDest(kind)
		assert.Nil(t, destValue(dest), "kind %d", kind)
	}
}
