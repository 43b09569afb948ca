package render

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day on the wire ("2026-10-01"). Full RFC 3339 timestamps are accepted too.
type Date time.Time

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = Date(t)
			return nil
		}
	}

	return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
}

func (d Date) Time() time.Time {
	return time.Time(d)
}

// TimePtr converts an optional wire date for the domain.
func TimePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}

	return new(d.Time())
}

// DatePtr converts an optional domain time for the wire.
func DatePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}

	return new(Date(*t))
}
