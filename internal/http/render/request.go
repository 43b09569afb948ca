package render

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fletes/internal/page"
)

// URLID parses the chi URL parameter name as a UUID.
func URLID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}

	return id, nil
}

// PageRequest reads ?page= and ?per_page=. Bad values fall back to the defaults.
func PageRequest(r *http.Request) page.Request {
	q := r.URL.Query()

	p, _ := strconv.Atoi(q.Get("page"))
	pp, _ := strconv.Atoi(q.Get("per_page"))

	return page.Request{Page: p, PerPage: pp}.Normalize()
}

// DateParam parses an optional YYYY-MM-DD query parameter.
func DateParam(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: expected YYYY-MM-DD", name)
	}

	return &t, nil
}

// UUIDParam parses an optional UUID query parameter.
func UUIDParam(r *http.Request, name string) (*uuid.UUID, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}

	return &id, nil
}
