package gen

import (
	"go/token"

	"github.com/syssam/crudgen/compiler/load"
	"github.com/syssam/crudgen/schema/field"
)

// Entity is the read-only view of an entity that the artifact builders
// depend on. Type is the implementation built from loaded schemas.
type Entity interface {
	// Name returns the simple type name, e.g. "User".
	Name() string
	// QualifiedName returns the package-qualified type name.
	QualifiedName() string
	// PackageName returns the import path of the declaring package.
	PackageName() string
	// IDType returns the declared type of the identifier field.
	IDType() *field.TypeInfo
	// NonTransientFields returns the persistent field names in declaration order.
	NonTransientFields() []string
	// FieldType returns the declared type of the named field, or an
	// ErrUnresolvedFieldType error.
	FieldType(name string) (*field.TypeInfo, error)
}

type (
	// Type is the descriptor of one entity. It is immutable once built
	// by NewType.
	Type struct {
		name string
		pkg  string
		pos  string
		// ID holds the identifier field.
		ID *Field
		// Fields holds all declared fields, transient ones included.
		Fields []*Field
		fields map[string]*Field
		// Crud holds the generation options declared with the entity.
		Crud Crud
	}

	// Field is a declared entity field.
	Field struct {
		Name      string
		Type      *field.TypeInfo
		Transient bool
	}
)

var _ Entity = (*Type)(nil)

// NewType builds the descriptor of a loaded schema. It fails if the entity
// has no name, declares a field twice or has no typed identifier field.
func NewType(s *load.Schema) (*Type, error) {
	if s == nil {
		return nil, NewSchemaError("", "schema is nil", nil)
	}
	if s.Name == "" {
		return nil, &SchemaError{Pos: s.Pos, Cause: ErrEmptyEntityName}
	}
	t := &Type{
		name:   s.Name,
		pkg:    s.Package,
		pos:    s.Pos,
		Fields: make([]*Field, 0, len(s.Fields)),
		fields: make(map[string]*Field, len(s.Fields)),
	}
	for _, f := range s.Fields {
		if f.Name == "" {
			return nil, NewUnresolvedFieldError(t.name, "", "field name is empty", nil)
		}
		if !f.Transient && !validName(f.Name) {
			return nil, NewUnresolvedFieldError(t.name, f.Name, "field name is not a valid identifier", nil)
		}
		if _, ok := t.fields[f.Name]; ok {
			return nil, NewDuplicateFieldError(t.name, f.Name, "field is declared twice")
		}
		fd := &Field{Name: f.Name, Transient: f.Transient}
		if f.Info != nil {
			info := *f.Info
			fd.Type = &info
		}
		t.Fields = append(t.Fields, fd)
		t.fields[fd.Name] = fd
	}
	idName := s.ID
	if idName == "" {
		idName = load.DefaultID
	}
	id, ok := t.fields[idName]
	if !ok || id.Type == nil {
		return nil, NewUnresolvedFieldError(t.name, idName, "identifier field has no declared type", nil)
	}
	t.ID = id
	if s.Crud != nil {
		crud, err := NewCrud(s.Crud)
		if err != nil {
			return nil, &SchemaError{Type: t.name, Pos: t.pos, Message: "invalid crud options", Cause: err}
		}
		t.Crud = crud
	}
	return t, nil
}

// validName reports whether name can serve as a query placeholder and a
// parameter name.
func validName(name string) bool {
	return name != "_" && token.IsIdentifier(name) && ParamName(name) != ""
}

// NewTypes builds the descriptors of all schemas.
func NewTypes(schemas ...*load.Schema) ([]*Type, error) {
	types := make([]*Type, 0, len(schemas))
	seen := make(map[string]bool, len(schemas))
	for _, s := range schemas {
		t, err := NewType(s)
		if err != nil {
			return nil, err
		}
		if seen[t.QualifiedName()] {
			return nil, &SchemaError{Type: t.name, Pos: t.pos, Message: "entity is declared twice"}
		}
		seen[t.QualifiedName()] = true
		types = append(types, t)
	}
	return types, nil
}

// Name returns the simple type name.
func (t *Type) Name() string { return t.name }

// QualifiedName returns the package-qualified type name.
func (t *Type) QualifiedName() string { return qualify(t.pkg, t.name) }

// PackageName returns the import path of the declaring package.
func (t *Type) PackageName() string { return t.pkg }

// Pos returns the source position of the entity declaration, if known.
func (t *Type) Pos() string { return t.pos }

// IDType returns the declared type of the identifier field.
func (t *Type) IDType() *field.TypeInfo { return t.ID.Type }

// NonTransientFields returns the persistent field names in declaration order.
func (t *Type) NonTransientFields() []string {
	names := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		if !f.Transient {
			names = append(names, f.Name)
		}
	}
	return names
}

// FieldType returns the declared type of the named field.
func (t *Type) FieldType(name string) (*field.TypeInfo, error) {
	f, ok := t.fields[name]
	switch {
	case !ok:
		return nil, NewUnresolvedFieldError(t.name, name, "no such field", nil)
	case f.Type == nil:
		return nil, NewUnresolvedFieldError(t.name, name, "field has no declared type", nil)
	}
	return f.Type, nil
}
