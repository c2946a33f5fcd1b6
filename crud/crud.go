// Package crud holds the runtime types referenced by generated repositories
// and services.
//
// A generated repository embeds Repository and adds a filter method. A
// generated service wraps every repository result in a Response:
//
//	svc := model.NewUserService(repo)
//	res := svc.All(ctx, nil, nil) // every row, as a single page
//	if res.Err != nil {
//		...
//	}
package crud

import (
	"context"
	"math"
	"net/http"
)

// MaxPageSize is the page size of a Pageable covering an entire result set.
const MaxPageSize = math.MaxInt32

// Repository is the generic data-access contract embedded by every
// generated repository interface.
type Repository[T any, ID comparable] interface {
	// Save stores the entity and returns the stored value.
	Save(ctx context.Context, entity T) (T, error)
	// FindByID returns the entity with the given identifier, if any.
	FindByID(ctx context.Context, id ID) (Optional[T], error)
	// FindAll returns every entity.
	FindAll(ctx context.Context) ([]T, error)
	// FindPage returns one page of entities.
	FindPage(ctx context.Context, pageable Pageable) (Page[T], error)
	// DeleteByID removes the entity with the given identifier.
	DeleteByID(ctx context.Context, id ID) error
}

// Pageable describes one page of a result set as an (offset, size) pair.
// Offset is the zero-based index of the page, Size the number of rows in it.
type Pageable struct {
	Offset int `json:"offset"`
	Size   int `json:"size"`
}

// PageRequestOf returns the Pageable for the given page offset and size.
func PageRequestOf(offset, size int) Pageable {
	return Pageable{Offset: offset, Size: size}
}

// Unpaged returns a Pageable covering the entire result set.
func Unpaged() Pageable {
	return Pageable{Offset: 0, Size: MaxPageSize}
}

// IsUnpaged reports if p covers the entire result set.
func (p Pageable) IsUnpaged() bool {
	return p.Offset == 0 && p.Size == MaxPageSize
}

// Bounds returns the half-open row range [lo, hi) selected by p in a
// result set of n rows.
func (p Pageable) Bounds(n int) (lo, hi int) {
	if p.Size <= 0 || p.Offset < 0 {
		return 0, 0
	}
	if p.Offset > 0 && p.Size > n/p.Offset {
		return n, n
	}
	lo = min(p.Offset*p.Size, n)
	hi = n
	if p.Size < n-lo {
		hi = lo + p.Size
	}
	return lo, hi
}

// Page is one page of a result set.
type Page[T any] struct {
	Content  []T      `json:"content"`
	Pageable Pageable `json:"pageable"`
	Total    int64    `json:"total"`
}

// NewPage slices the page selected by p out of all.
func NewPage[T any](all []T, p Pageable) Page[T] {
	lo, hi := p.Bounds(len(all))
	return Page[T]{
		Content:  all[lo:hi],
		Pageable: p,
		Total:    int64(len(all)),
	}
}

// Optional holds a value that may be absent.
type Optional[T any] struct {
	value   T
	present bool
}

// Of returns an Optional holding v.
func Of[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Empty returns an absent Optional.
func Empty[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent reports if the value is present.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// Void is the body type of responses without content.
type Void = struct{}

// Response is the result of a generated service operation.
type Response[T any] struct {
	Status int
	Body   T
	Err    error
}

// OK returns a 200 response carrying body.
func OK[T any](body T) Response[T] {
	return Response[T]{Status: http.StatusOK, Body: body}
}

// NoContent returns a 204 response without a body.
func NoContent() Response[Void] {
	return Response[Void]{Status: http.StatusNoContent}
}

// Fail returns a 500 response carrying err.
func Fail[T any](err error) Response[T] {
	return Response[T]{Status: http.StatusInternalServerError, Err: err}
}
