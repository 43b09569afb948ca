package importer

import (
	"io"

	"github.com/MrJamesThe3rd/fletes/internal/importer/sheet"
)

type Format string

const (
	FormatAuto     Format = ""
	FormatPlanilla Format = sheet.FormatPlanilla
	FormatBanco    Format = sheet.FormatBanco
)

func (f Format) Valid() bool {
	switch f {
	case FormatAuto, FormatPlanilla, FormatBanco:
		return true
	}

	return false
}

// ParseError means the file itself could not be read as any accepted layout.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "parsing file: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

type Parser interface {
	Parse(r io.Reader, format string) (*sheet.Result, error)
}
