package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/crudgen/schema/field"
)

const userSchema = `
entities:
  - name: User
    package: example.com/app/model
    fields:
      - name: id
        type: int
      - name: name
        type: string
      - name: email
        type: string
      - name: password
        type: string
        transient: true
    crud:
      fields: [name]
      like: both
`

func TestParse(t *testing.T) {
	schemas, err := Parse([]byte(userSchema))
	require.NoError(t, err)
	require.Len(t, schemas, 1)

	s := schemas[0]
	assert.Equal(t, "User", s.Name)
	assert.Equal(t, "example.com/app/model", s.Package)
	assert.Equal(t, DefaultID, s.ID)
	require.Len(t, s.Fields, 4)
	assert.Equal(t, []string{"id", "name", "email", "password"}, []string{
		s.Fields[0].Name, s.Fields[1].Name, s.Fields[2].Name, s.Fields[3].Name,
	})
	assert.Equal(t, field.TypeInt, s.Fields[0].Info.Type)
	assert.Equal(t, field.TypeString, s.Field("email").Info.Type)
	assert.True(t, s.Field("password").Transient)
	assert.Nil(t, s.Field("missing"))

	require.NotNil(t, s.Crud)
	assert.Equal(t, []string{"name"}, s.Crud.Fields)
	assert.Equal(t, "both", s.Crud.Like)
	assert.False(t, s.Crud.Pagination)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"no entities", "entities: []"},
		{"unknown key", "entities:\n  - name: User\n    table: users\n"},
		{"unknown type", "entities:\n  - name: User\n    fields:\n      - name: id\n        type: complex128\n"},
		{"malformed", "entities: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestParse_UntypedField(t *testing.T) {
	schemas, err := Parse([]byte("entities:\n  - name: User\n    fields:\n      - name: id\n"))
	require.NoError(t, err)
	assert.Nil(t, schemas[0].Fields[0].Info, "untyped fields stay unresolved")
}

func TestParse_CustomIdent(t *testing.T) {
	doc := `
entities:
  - name: Order
    id: code
    fields:
      - name: code
        type: uuid
      - name: status
        type: string
        ident: model.Status
        pkg_path: example.com/app/model
      - name: shipped_at
        type: time.Time
        nillable: true
`
	schemas, err := Parse([]byte(doc))
	require.NoError(t, err)
	s := schemas[0]
	assert.Equal(t, "code", s.ID)
	assert.Equal(t, field.TypeUUID, s.Field("code").Info.Type)
	status := s.Field("status").Info
	assert.Equal(t, "model.Status", status.String())
	assert.Equal(t, "example.com/app/model", status.Package())
	assert.True(t, status.Textual())
	assert.Equal(t, "*time.Time", s.Field("shipped_at").Info.String())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(userSchema), 0o644))

	schemas, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, schemas, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
