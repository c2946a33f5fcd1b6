package field

import (
	"fmt"
	"strings"
)

// A Type represents a field type.
type Type uint8

// List of field types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeInt
	TypeInt32
	TypeInt64
	TypeUint
	TypeFloat64
	TypeString
	TypeTime
	TypeUUID
	TypeBytes
	endTypes
)

var (
	typeNames = [...]string{
		TypeInvalid: "invalid",
		TypeBool:    "bool",
		TypeInt:     "int",
		TypeInt32:   "int32",
		TypeInt64:   "int64",
		TypeUint:    "uint",
		TypeFloat64: "float64",
		TypeString:  "string",
		TypeTime:    "time.Time",
		TypeUUID:    "uuid.UUID",
		TypeBytes:   "[]byte",
	}
	typePkgs = [endTypes]string{
		TypeTime: "time",
		TypeUUID: "github.com/google/uuid",
	}
	// aliases accepted by ParseType in addition to the Go spelling.
	typeAliases = map[string]Type{
		"integer":   TypeInt,
		"long":      TypeInt64,
		"float":     TypeFloat64,
		"double":    TypeFloat64,
		"boolean":   TypeBool,
		"text":      TypeString,
		"time":      TypeTime,
		"timestamp": TypeTime,
		"uuid":      TypeUUID,
		"bytes":     TypeBytes,
	}
)

// String returns the Go spelling of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type is one of the known types.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t >= TypeInt && t <= TypeFloat64
}

// Textual reports if the given type is the textual-string type.
func (t Type) Textual() bool {
	return t == TypeString
}

// ParseType parses the schema-file spelling of a type. Go spellings and a
// small set of aliases (e.g. "long", "text", "uuid") are accepted.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if t, ok := LookupGo(s); ok {
		return t, nil
	}
	if t, ok := typeAliases[strings.ToLower(s)]; ok {
		return t, nil
	}
	return TypeInvalid, fmt.Errorf("field: unknown type %q", s)
}

// LookupGo returns the type spelled exactly as s in Go source,
// e.g. "int64" or "time.Time".
func LookupGo(s string) (Type, bool) {
	for t := TypeBool; t < endTypes; t++ {
		if typeNames[t] == s {
			return t, true
		}
	}
	return TypeInvalid, false
}

// TypeInfo holds the full info of a field type.
type TypeInfo struct {
	Type Type
	// Ident overrides the Go identifier of the type, e.g. "model.Status".
	Ident string
	// PkgPath is the import path of the package declaring Ident.
	PkgPath string
	// Nillable reports if the declared type is a pointer.
	Nillable bool
}

// String returns the Go spelling of the type, including the pointer
// prefix for nillable types.
func (t TypeInfo) String() string {
	s := t.Type.String()
	if t.Ident != "" {
		s = t.Ident
	}
	if t.Nillable {
		return "*" + s
	}
	return s
}

// Name returns the bare identifier of the type without its package qualifier.
// Composite spellings such as "[]model.Tag" are returned unchanged.
func (t TypeInfo) Name() string {
	s := t.Type.String()
	if t.Ident != "" {
		s = t.Ident
	}
	if strings.ContainsAny(s, "[]*(){} ") {
		return s
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Package returns the import path of the package declaring the type,
// or "" for predeclared types.
func (t TypeInfo) Package() string {
	if t.PkgPath != "" {
		return t.PkgPath
	}
	if t.Ident != "" {
		return ""
	}
	if t.Type < endTypes {
		return typePkgs[t.Type]
	}
	return ""
}

// Textual reports if the field holds text.
func (t TypeInfo) Textual() bool {
	return t.Type.Textual()
}
