package gen

import (
	"strings"

	"github.com/syssam/crudgen/schema/field"
)

// QueryField is a filter field with its declared type.
type QueryField struct {
	Name string
	Type *field.TypeInfo
}

// FilterQuery synthesizes the filter query of an entity. Every field
// becomes a null-guarded clause, so a null argument disables its clause:
//
//	select o from User o where (:name is null or o.name = :name)
//
// With a like mode other than LikeNone, textual fields match
// case-insensitively with the wildcards of the mode instead:
//
//	(:name is null or LOWER(o.name) like LOWER(CONCAT('%', :name, '%')))
//
// Clauses keep the order of fields and are joined with "and". An empty
// field list selects every row.
func FilterQuery(entity string, fields []QueryField, like LikeMode) string {
	var b strings.Builder
	b.WriteString("select o from ")
	b.WriteString(entity)
	b.WriteString(" o")
	if len(fields) > 0 {
		b.WriteString(" where ")
	}
	for i, f := range fields {
		if i > 0 {
			b.WriteString(" and ")
		}
		b.WriteString("(:")
		b.WriteString(f.Name)
		b.WriteString(" is null or ")
		if f.Type != nil && f.Type.Textual() && like != LikeNone {
			b.WriteString("LOWER(o.")
			b.WriteString(f.Name)
			b.WriteString(") like LOWER(CONCAT(")
			if like.leading() {
				b.WriteString("'%', ")
			}
			b.WriteString(":")
			b.WriteString(f.Name)
			if like.trailing() {
				b.WriteString(", '%'")
			}
			b.WriteString("))")
		} else {
			b.WriteString("o.")
			b.WriteString(f.Name)
			b.WriteString(" = :")
			b.WriteString(f.Name)
		}
		b.WriteString(")")
	}
	return b.String()
}

// QueryFields resolves the declared types of the named fields of e.
func QueryFields(e Entity, names []string) ([]QueryField, error) {
	fields := make([]QueryField, 0, len(names))
	for _, name := range names {
		info, err := e.FieldType(name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, QueryField{Name: name, Type: info})
	}
	return fields, nil
}
