package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/crudgen/compiler/load"
	"github.com/syssam/crudgen/schema/field"
)

func TestParseLikeMode(t *testing.T) {
	tests := []struct {
		in   string
		want LikeMode
	}{
		{"", LikeNone},
		{"none", LikeNone},
		{"START", LikeStart},
		{"end", LikeEnd},
		{"Both", LikeBoth},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := ParseLikeMode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}

	_, err := ParseLikeMode("middle")
	require.ErrorIs(t, err, ErrMissingConfig)
}

func TestLikeModeText(t *testing.T) {
	assert.Equal(t, "both", LikeBoth.String())
	assert.Equal(t, "LikeMode(9)", LikeMode(9).String())

	text, err := LikeEnd.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "end", string(text))

	var m LikeMode
	require.NoError(t, m.UnmarshalText([]byte("start")))
	assert.Equal(t, LikeStart, m)
	require.Error(t, m.UnmarshalText([]byte("x")))
	assert.Equal(t, LikeStart, m)
}

func TestLikeModeWildcards(t *testing.T) {
	assert.False(t, LikeNone.leading())
	assert.False(t, LikeNone.trailing())
	assert.True(t, LikeStart.leading())
	assert.False(t, LikeStart.trailing())
	assert.False(t, LikeEnd.leading())
	assert.True(t, LikeEnd.trailing())
	assert.True(t, LikeBoth.leading())
	assert.True(t, LikeBoth.trailing())
}

func TestNewFilterCopies(t *testing.T) {
	fields := []string{"name", "email"}
	f := NewFilter(LikeNone, fields...)
	fields[0] = "id"
	assert.Equal(t, []string{"name", "email"}, f.Fields())

	got := f.Fields()
	got[1] = "id"
	assert.Equal(t, []string{"name", "email"}, f.Fields())
}

func TestFilterExpand(t *testing.T) {
	s := userSchema(nil)
	s.Fields = append(s.Fields, &load.Field{Name: "token", Info: &field.TypeInfo{Type: field.TypeString}, Transient: true})
	typ, err := NewType(s)
	require.NoError(t, err)

	t.Run("wildcard", func(t *testing.T) {
		fields, err := NewFilter(LikeNone, AllFields).Expand(typ)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name", "email"}, fields)
	})

	t.Run("keeps declared order", func(t *testing.T) {
		fields, err := NewFilter(LikeNone, "email", "id").Expand(typ)
		require.NoError(t, err)
		assert.Equal(t, []string{"email", "id"}, fields)
	})

	t.Run("empty", func(t *testing.T) {
		fields, err := NewFilter(LikeNone).Expand(typ)
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("wildcard among names", func(t *testing.T) {
		_, err := NewFilter(LikeNone, "name", AllFields).Expand(typ)
		require.ErrorIs(t, err, ErrUnresolvedFieldType)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := NewFilter(LikeNone, "age").Expand(typ)
		require.ErrorIs(t, err, ErrUnresolvedFieldType)
	})

	t.Run("transient field", func(t *testing.T) {
		_, err := NewFilter(LikeNone, "token").Expand(typ)
		require.ErrorIs(t, err, ErrUnresolvedFieldType)
		assert.Contains(t, err.Error(), "transient")
	})

	t.Run("duplicate field", func(t *testing.T) {
		_, err := NewFilter(LikeNone, "name", "name").Expand(typ)
		require.ErrorIs(t, err, ErrDuplicateFieldName)
	})
}

func TestNewCrud(t *testing.T) {
	c, err := NewCrud(nil)
	require.NoError(t, err)
	assert.Empty(t, c.Filter.Fields())
	assert.False(t, c.Pagination)

	c, err = NewCrud(&load.Crud{Fields: []string{"*"}, Like: "end", Pagination: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, c.Filter.Fields())
	assert.Equal(t, LikeEnd, c.Filter.Like)
	assert.True(t, c.Pagination)
}
