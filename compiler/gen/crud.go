package gen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/crudgen/compiler/load"
)

// AllFields is the filter sentinel selecting every non-transient field.
const AllFields = "*"

// LikeMode controls text-field matching in filter queries.
//
// The names follow the historical mapping: LikeStart puts the wildcard
// before the value and LikeEnd after it.
type LikeMode uint8

// Like modes.
const (
	LikeNone LikeMode = iota
	LikeStart
	LikeEnd
	LikeBoth
)

var likeNames = [...]string{
	LikeNone:  "none",
	LikeStart: "start",
	LikeEnd:   "end",
	LikeBoth:  "both",
}

// String returns the lower-case name of the mode.
func (m LikeMode) String() string {
	if int(m) < len(likeNames) {
		return likeNames[m]
	}
	return fmt.Sprintf("LikeMode(%d)", m)
}

// ParseLikeMode parses a mode name case-insensitively. The empty string
// is LikeNone.
func ParseLikeMode(s string) (LikeMode, error) {
	if s == "" {
		return LikeNone, nil
	}
	if i := slices.Index(likeNames[:], strings.ToLower(s)); i >= 0 {
		return LikeMode(i), nil
	}
	return LikeNone, NewConfigError("like", s, "unknown like mode; use none, start, end or both")
}

// MarshalText implements encoding.TextMarshaler.
func (m LikeMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *LikeMode) UnmarshalText(text []byte) error {
	v, err := ParseLikeMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// leading reports whether the mode puts a wildcard before the value.
func (m LikeMode) leading() bool { return m == LikeStart || m == LikeBoth }

// trailing reports whether the mode puts a wildcard after the value.
func (m LikeMode) trailing() bool { return m == LikeEnd || m == LikeBoth }

// Filter selects the fields of the generated filter operation.
type Filter struct {
	fields []string
	// Like is the text-match style of textual fields.
	Like LikeMode
}

// NewFilter returns a filter over the given fields. The slice is copied.
func NewFilter(like LikeMode, fields ...string) Filter {
	return Filter{fields: slices.Clone(fields), Like: like}
}

// Fields returns a copy of the declared field names.
func (f Filter) Fields() []string {
	return slices.Clone(f.fields)
}

// Expand returns the filter fields of e in generation order. A single "*"
// expands to the non-transient fields of e in declaration order. Every
// field must be a non-transient field of e and appear once.
func (f Filter) Expand(e Entity) ([]string, error) {
	fields := f.fields
	if len(fields) == 1 && fields[0] == AllFields {
		return e.NonTransientFields(), nil
	}
	persistent := e.NonTransientFields()
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, name := range fields {
		if seen[name] {
			return nil, NewDuplicateFieldError(e.Name(), name, "field is listed twice in the filter")
		}
		seen[name] = true
		if _, err := e.FieldType(name); err != nil {
			return nil, err
		}
		if !slices.Contains(persistent, name) {
			return nil, NewUnresolvedFieldError(e.Name(), name, "transient fields cannot be filtered", nil)
		}
		out = append(out, name)
	}
	return out, nil
}

// Crud is the generation request of one entity.
type Crud struct {
	Filter     Filter
	Pagination bool
}

// NewCrud converts loaded crud options.
func NewCrud(c *load.Crud) (Crud, error) {
	if c == nil {
		return Crud{}, nil
	}
	like, err := ParseLikeMode(c.Like)
	if err != nil {
		return Crud{}, err
	}
	return Crud{
		Filter:     NewFilter(like, c.Fields...),
		Pagination: c.Pagination,
	}, nil
}
