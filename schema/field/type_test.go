package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "string", TypeString.String())
	assert.Equal(t, "time.Time", TypeTime.String())
	assert.Equal(t, "invalid", Type(200).String())
}

func TestTypeValid(t *testing.T) {
	assert.False(t, TypeInvalid.Valid())
	assert.True(t, TypeBool.Valid())
	assert.True(t, TypeBytes.Valid())
	assert.False(t, endTypes.Valid())
}

func TestTypeNumeric(t *testing.T) {
	for _, typ := range []Type{TypeInt, TypeInt32, TypeInt64, TypeUint, TypeFloat64} {
		assert.True(t, typ.Numeric(), typ.String())
	}
	assert.False(t, TypeString.Numeric())
	assert.False(t, TypeBool.Numeric())
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"string", TypeString, false},
		{" int64 ", TypeInt64, false},
		{"time.Time", TypeTime, false},
		{"uuid.UUID", TypeUUID, false},
		{"[]byte", TypeBytes, false},
		{"Long", TypeInt64, false},
		{"text", TypeString, false},
		{"uuid", TypeUUID, false},
		{"complex128", TypeInvalid, true},
		{"", TypeInvalid, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeInfo(t *testing.T) {
	t.Run("predeclared", func(t *testing.T) {
		info := TypeInfo{Type: TypeString}
		assert.Equal(t, "string", info.String())
		assert.Equal(t, "string", info.Name())
		assert.Empty(t, info.Package())
		assert.True(t, info.Textual())
	})

	t.Run("package qualified", func(t *testing.T) {
		info := TypeInfo{Type: TypeUUID}
		assert.Equal(t, "uuid.UUID", info.String())
		assert.Equal(t, "UUID", info.Name())
		assert.Equal(t, "github.com/google/uuid", info.Package())
		assert.False(t, info.Textual())
	})

	t.Run("nillable", func(t *testing.T) {
		info := TypeInfo{Type: TypeTime, Nillable: true}
		assert.Equal(t, "*time.Time", info.String())
		assert.Equal(t, "time", info.Package())
	})

	t.Run("custom ident", func(t *testing.T) {
		info := TypeInfo{Type: TypeString, Ident: "model.Status", PkgPath: "example.com/app/model"}
		assert.Equal(t, "model.Status", info.String())
		assert.Equal(t, "Status", info.Name())
		assert.Equal(t, "example.com/app/model", info.Package())
		assert.True(t, info.Textual())
	})

	t.Run("composite ident", func(t *testing.T) {
		info := TypeInfo{Ident: "[]model.Tag"}
		assert.Equal(t, "[]model.Tag", info.Name())
		assert.Equal(t, "[]byte", TypeInfo{Type: TypeBytes}.Name())
	})
}

func TestLookupGo(t *testing.T) {
	typ, ok := LookupGo("time.Time")
	assert.True(t, ok)
	assert.Equal(t, TypeTime, typ)

	_, ok = LookupGo("text")
	assert.False(t, ok, "aliases are not Go spellings")
}
