package money

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

// Currency is the ISO code of an amount. Only USD (divisa) and VES (bolívares) are in use.
type Currency string

const (
	USD Currency = "USD"
	VES Currency = "VES"
)

func (c Currency) Valid() bool {
	return c == USD || c == VES
}

func ParseCurrency(s string) (Currency, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return "", fmt.Errorf("parsing currency %q: %w", s, err)
	}

	c := Currency(unit.String())
	if !c.Valid() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}

	return c, nil
}

// RateType classifies where an exchange rate came from.
type RateType string

const (
	RateBCV      RateType = "bcv"
	RateParallel RateType = "paralelo"
	RateAverage  RateType = "promedio"
	// RateCustom marks a rate typed in by hand. It is never refreshed from the rate source.
	RateCustom RateType = "personalizada"
)

// RateTypes lists every known rate type in display order.
var RateTypes = []RateType{RateParallel, RateBCV, RateAverage, RateCustom}

func (t RateType) Valid() bool {
	switch t {
	case RateBCV, RateParallel, RateAverage, RateCustom:
		return true
	}

	return false
}

// legacyCustomRate is how older expense records and the expense form spell RateCustom.
const legacyCustomRate = "custom"

// ParseRateType accepts the stored names plus "custom", which older expense
// records used for manual rates.
func ParseRateType(s string) (RateType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == legacyCustomRate {
		return RateCustom, nil
	}

	t := RateType(v)
	if !t.Valid() {
		return "", fmt.Errorf("unknown rate type %q", s)
	}

	return t, nil
}

func normalizeRateType(s string) RateType {
	if t, err := ParseRateType(s); err == nil {
		return t
	}

	return RateType(s)
}

// UnmarshalText normalises "custom" to RateCustom. Unknown names are kept as
// given so validation can report them on tipo_tasa.
func (t *RateType) UnmarshalText(b []byte) error {
	*t = normalizeRateType(string(b))
	return nil
}

// Scan reads a stored tipo_tasa, normalising legacy "custom" rows.
func (t *RateType) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = normalizeRateType(v)
	case []byte:
		*t = normalizeRateType(string(v))
	default:
		return fmt.Errorf("scanning rate type from %T", src)
	}

	return nil
}

// StoredNames lists the spellings of t found in stored rows.
func (t RateType) StoredNames() []string {
	if t == RateCustom {
		return []string{string(RateCustom), legacyCustomRate}
	}

	return []string{string(t)}
}
