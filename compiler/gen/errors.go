// Package gen synthesizes repository and service artifact definitions from
// entity descriptors.
package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrUnresolvedFieldType indicates a field without a resolvable declared type.
	ErrUnresolvedFieldType = errors.New("crudgen: unresolved field type")
	// ErrDuplicateFieldName indicates two fields mapping to the same parameter name.
	ErrDuplicateFieldName = errors.New("crudgen: duplicate field name")
	// ErrEmptyEntityName indicates an entity without a name.
	ErrEmptyEntityName = errors.New("crudgen: empty entity name")
	// ErrInvalidNamingPolicy indicates a degenerate naming configuration.
	ErrInvalidNamingPolicy = errors.New("crudgen: invalid naming policy")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("crudgen: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("crudgen: code generation failed")
)

// FieldError reports a field that cannot take part in generation.
// Kind is ErrUnresolvedFieldType or ErrDuplicateFieldName.
type FieldError struct {
	Kind    error
	Type    string // Entity type name
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	var b strings.Builder
	b.WriteString("crudgen: ")
	switch e.Kind {
	case ErrDuplicateFieldName:
		b.WriteString("duplicate field")
	default:
		b.WriteString("unresolved field type")
	}
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the kind of the error.
func (e *FieldError) Is(target error) bool {
	if e.Kind == nil {
		return target == ErrUnresolvedFieldType
	}
	return target == e.Kind
}

// NewUnresolvedFieldError creates an ErrUnresolvedFieldType FieldError.
func NewUnresolvedFieldError(typeName, fieldName, message string, cause error) *FieldError {
	return &FieldError{
		Kind:    ErrUnresolvedFieldType,
		Type:    typeName,
		Field:   fieldName,
		Message: message,
		Cause:   cause,
	}
}

// NewDuplicateFieldError creates an ErrDuplicateFieldName FieldError.
func NewDuplicateFieldError(typeName, fieldName, message string) *FieldError {
	return &FieldError{
		Kind:    ErrDuplicateFieldName,
		Type:    typeName,
		Field:   fieldName,
		Message: message,
	}
}

// SchemaError represents an entity-level definition error.
type SchemaError struct {
	Type    string
	Pos     string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("crudgen: schema error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Pos != "" {
		fmt.Fprintf(&b, " (%s)", e.Pos)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(typeName, message string, cause error) *SchemaError {
	return &SchemaError{
		Type:    typeName,
		Message: message,
		Cause:   cause,
	}
}

// NamingError reports an invalid naming policy.
type NamingError struct {
	Option  string
	Value   string
	Message string
}

// Error implements the error interface.
func (e *NamingError) Error() string {
	return fmt.Sprintf("crudgen: invalid naming policy %s %q: %s", e.Option, e.Value, e.Message)
}

// Is reports whether the target matches ErrInvalidNamingPolicy.
func (e *NamingError) Is(target error) bool {
	return target == ErrInvalidNamingPolicy
}

// NewNamingError creates a new NamingError.
func NewNamingError(option, value, message string) *NamingError {
	return &NamingError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("crudgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("crudgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Entity  string
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("crudgen: generation error")
	if e.Entity != "" {
		b.WriteString(" for ")
		b.WriteString(e.Entity)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(entity, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Entity:  entity,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsFieldError reports whether the error is a FieldError.
func IsFieldError(err error) bool {
	var fieldErr *FieldError
	return errors.As(err, &fieldErr)
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
