// Package page holds the offset pagination shared by the list endpoints.
package page

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Request is a 1-based page selection.
type Request struct {
	Page    int
	PerPage int
}

// Normalize applies the defaults: page 1, ten rows, at most MaxPerPage.
func (r Request) Normalize() Request {
	if r.Page < 1 {
		r.Page = 1
	}

	switch {
	case r.PerPage < 1:
		r.PerPage = DefaultPerPage
	case r.PerPage > MaxPerPage:
		r.PerPage = MaxPerPage
	}

	return r
}

func (r Request) Limit() int {
	return r.Normalize().PerPage
}

func (r Request) Offset() int {
	n := r.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Result is one page of items plus the total row count of the unpaged query.
type Result[T any] struct {
	Items   []T `json:"items"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

func NewResult[T any](items []T, total int, req Request) Result[T] {
	n := req.Normalize()

	return Result[T]{Items: items, Total: total, Page: n.Page, PerPage: n.PerPage}
}

// Pages is the number of pages needed for Total rows.
func (r Result[T]) Pages() int {
	if r.PerPage == 0 {
		return 0
	}

	return (r.Total + r.PerPage - 1) / r.PerPage
}
