// Package load reads entity descriptions from schema files and Go sources.
package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/crudgen/schema/field"
)

// Document is the top-level structure of a YAML schema file.
type Document struct {
	Entities []*Schema `yaml:"entities"`
}

// Schema represents an entity that was loaded from a schema file or a Go package.
type Schema struct {
	Name string `yaml:"name" json:"name,omitempty"`
	// Package is the import path of the package declaring the entity.
	Package string `yaml:"package" json:"package,omitempty"`
	// ID is the name of the identifier field. Defaults to "id".
	ID     string   `yaml:"id,omitempty" json:"id,omitempty"`
	Fields []*Field `yaml:"fields" json:"fields,omitempty"`
	Crud   *Crud    `yaml:"crud,omitempty" json:"crud,omitempty"`
	// Pos is the source position of the entity declaration.
	Pos string `yaml:"-" json:"-"`
}

// Field represents a declared entity field.
type Field struct {
	Name string `yaml:"name" json:"name,omitempty"`
	// Type is the schema spelling of the field type. See field.ParseType.
	Type      string `yaml:"type,omitempty" json:"type,omitempty"`
	Ident     string `yaml:"ident,omitempty" json:"ident,omitempty"`
	PkgPath   string `yaml:"pkg_path,omitempty" json:"pkg_path,omitempty"`
	Nillable  bool   `yaml:"nillable,omitempty" json:"nillable,omitempty"`
	Transient bool   `yaml:"transient,omitempty" json:"transient,omitempty"`
	// Info is the resolved type. A nil Info marks a field whose type
	// could not be resolved.
	Info *field.TypeInfo `yaml:"-" json:"-"`
}

// Crud holds the generation options of an entity.
type Crud struct {
	// Fields lists the filterable fields. A single "*" selects every
	// non-transient field.
	Fields []string `yaml:"fields,omitempty" json:"fields,omitempty"`
	// Like is the text-match style: none, start, end or both.
	Like       string `yaml:"like,omitempty" json:"like,omitempty"`
	Pagination bool   `yaml:"pagination,omitempty" json:"pagination,omitempty"`
}

// DefaultID is the identifier field name used when a schema names none.
const DefaultID = "id"

// ErrNoEntities is returned for schema files without entities.
var ErrNoEntities = errors.New("load: no entities declared")

// LoadFile reads the YAML schema file at path.
func LoadFile(path string) ([]*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()
	schemas, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return schemas, nil
}

// Parse parses a YAML schema document.
func Parse(data []byte) ([]*Schema, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a YAML schema document from r. Unknown keys are rejected.
func Decode(r io.Reader) ([]*Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoEntities
		}
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	if len(doc.Entities) == 0 {
		return nil, ErrNoEntities
	}
	for _, s := range doc.Entities {
		if err := s.defaults(); err != nil {
			return nil, fmt.Errorf("schema %q: %w", s.Name, err)
		}
	}
	return doc.Entities, nil
}

// Field returns the field with the given name, or nil.
func (s *Schema) Field(name string) *Field {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (s *Schema) defaults() error {
	if s.ID == "" {
		s.ID = DefaultID
	}
	for _, f := range s.Fields {
		if f == nil {
			return errors.New("nil field")
		}
		if err := f.defaults(); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	return nil
}

// defaults resolves the type info of the field. Fields without a type
// keep a nil Info and fail later, when the generator looks them up.
func (f *Field) defaults() error {
	if f.Info != nil {
		return nil
	}
	if f.Type == "" && f.Ident == "" {
		return nil
	}
	info := &field.TypeInfo{
		Ident:    f.Ident,
		PkgPath:  f.PkgPath,
		Nillable: f.Nillable,
	}
	if f.Type != "" {
		t, err := field.ParseType(f.Type)
		if err != nil {
			return err
		}
		info.Type = t
	}
	f.Info = info
	return nil
}
