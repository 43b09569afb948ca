package validate

import "strings"

// FieldError is a single violation attached to the input field that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors collects every violation found in a record. Rules never stop at the
// first failure.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}

	return strings.Join(parts, "; ")
}

func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Has reports whether any violation names field.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}

	return false
}

// Message returns the first message recorded for field.
func (e Errors) Message(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}

	return ""
}

// Prefix qualifies every field with p, for nested records such as "facturas[2]".
func (e Errors) Prefix(p string) Errors {
	out := make(Errors, len(e))
	for i, fe := range e {
		out[i] = FieldError{Field: p + "." + fe.Field, Message: fe.Message}
	}

	return out
}

// OrNil returns nil when there are no violations so callers can return it as an error.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}

	return e
}
