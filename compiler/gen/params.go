package gen

import (
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/crudgen/schema/field"
)

// TypeLookup resolves the declared type of a field by name.
type TypeLookup func(name string) (*field.TypeInfo, error)

// AnnotationFactory returns the annotations of the parameter bound to a field.
type AnnotationFactory func(field string) []Annotation

// BindParam annotates a parameter with the name of the query placeholder
// it binds to.
func BindParam(field string) []Annotation {
	return []Annotation{{Name: AnnotationParam, Value: field}}
}

// ParamName returns the generated parameter name of a field: its
// lower-camel form, e.g. "user_name" becomes "userName". It returns ""
// for a name made of separators only, such as "_".
func ParamName(field string) string {
	camel := inflect.Camelize(field)
	if camel == "" {
		return ""
	}
	return strings.ToLower(camel[:1]) + camel[1:]
}

// BuildParams builds one parameter per field, in order, typed by lookup.
// If annotate is not nil its result is attached to every parameter.
// Parameter names are not checked for collisions here; callers validate
// the field list first.
func BuildParams(fields []string, lookup TypeLookup, annotate AnnotationFactory) ([]Param, error) {
	params := make([]Param, 0, len(fields))
	for _, name := range fields {
		info, err := lookup(name)
		if err != nil {
			return nil, err
		}
		p := Param{Name: ParamName(name), Type: FieldRef(info)}
		if annotate != nil {
			p.Annotations = annotate(name)
		}
		params = append(params, p)
	}
	return params, nil
}

// EntityRef references the entity type of e.
func EntityRef(e Entity) TypeRef {
	return TypeRef{Name: e.Name(), Package: e.PackageName()}
}

// FieldRef references a declared field type.
func FieldRef(info *field.TypeInfo) TypeRef {
	return TypeRef{
		Name:     info.Name(),
		Package:  info.Package(),
		Nullable: info.Nillable,
	}
}

// filterFields expands the filter of c over e and checks that the
// generated parameter names are distinct, including the names reserved
// by paginated methods.
func filterFields(e Entity, c Crud) ([]string, error) {
	fields, err := c.Filter.Expand(e)
	if err != nil {
		return nil, err
	}
	used := make(map[string]string, len(fields)+3)
	if c.Pagination {
		for _, reserved := range []string{ParamPageable, ParamPage, ParamPageSize} {
			used[reserved] = reserved
		}
	}
	for _, f := range fields {
		name := ParamName(f)
		if name == "" {
			return nil, NewUnresolvedFieldError(e.Name(), f, "field name has no parameter form", nil)
		}
		if prev, ok := used[name]; ok {
			return nil, NewDuplicateFieldError(e.Name(), f, "parameter name "+name+" is already used by "+prev)
		}
		used[name] = f
	}
	return fields, nil
}
