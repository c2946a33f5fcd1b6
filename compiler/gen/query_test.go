package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/crudgen/schema/field"
)

func TestFilterQuery(t *testing.T) {
	name := QueryField{Name: "name", Type: &field.TypeInfo{Type: field.TypeString}}
	id := QueryField{Name: "id", Type: &field.TypeInfo{Type: field.TypeInt}}

	tests := []struct {
		name   string
		fields []QueryField
		like   LikeMode
		want   string
	}{
		{
			name: "no fields",
			want: "select o from User o",
		},
		{
			name:   "like both",
			fields: []QueryField{name},
			like:   LikeBoth,
			want:   "select o from User o where (:name is null or LOWER(o.name) like LOWER(CONCAT('%', :name, '%')))",
		},
		{
			name:   "like start",
			fields: []QueryField{name},
			like:   LikeStart,
			want:   "select o from User o where (:name is null or LOWER(o.name) like LOWER(CONCAT('%', :name)))",
		},
		{
			name:   "like end",
			fields: []QueryField{name},
			like:   LikeEnd,
			want:   "select o from User o where (:name is null or LOWER(o.name) like LOWER(CONCAT(:name, '%')))",
		},
		{
			name:   "like none",
			fields: []QueryField{name},
			want:   "select o from User o where (:name is null or o.name = :name)",
		},
		{
			name:   "non textual ignores like",
			fields: []QueryField{id, name},
			like:   LikeBoth,
			want: "select o from User o where (:id is null or o.id = :id) and " +
				"(:name is null or LOWER(o.name) like LOWER(CONCAT('%', :name, '%')))",
		},
		{
			name:   "untyped field compares",
			fields: []QueryField{{Name: "code"}},
			like:   LikeBoth,
			want:   "select o from User o where (:code is null or o.code = :code)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterQuery("User", tt.fields, tt.like))
		})
	}
}

func TestFilterQueryOnlyStringsMatchLike(t *testing.T) {
	q := FilterQuery("Doc", []QueryField{{Name: "ref", Type: &field.TypeInfo{Type: field.TypeUUID}}}, LikeStart)
	assert.Equal(t, "select o from Doc o where (:ref is null or o.ref = :ref)", q)
}

func TestQueryFields(t *testing.T) {
	typ := userType(t, nil)

	fields, err := QueryFields(typ, []string{"email", "id"})
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "email", fields[0].Name)
	assert.True(t, fields[0].Type.Textual())
	assert.Equal(t, field.TypeInt, fields[1].Type.Type)

	_, err = QueryFields(typ, []string{"missing"})
	require.ErrorIs(t, err, ErrUnresolvedFieldType)
}
