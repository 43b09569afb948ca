package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var errEmptyAmount = errors.New("empty amount")

// ParseAmount parses a human-entered amount into cents.
func ParseAmount(s string) (int64, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}

	return ToCents(d)
}

// ParseDecimal parses a human-entered number such as an amount or a rate.
// Both "1.234,56" (es-VE) and "1,234.56" style grouping are accepted: when
// both separators appear the last one is the decimal mark. A lone comma is
// always decimal. A lone dot is decimal unless it repeats.
func ParseDecimal(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	for _, sym := range []string{"Bs.S", "Bs.", "Bs", "USD", "VES", "$"} {
		clean = strings.TrimSpace(strings.TrimPrefix(clean, sym))
	}

	clean = strings.ReplaceAll(clean, " ", "")
	if clean == "" {
		return decimal.Zero, errEmptyAmount
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.ReplaceAll(clean, ",", ".")
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(clean, ",") > 1 {
			clean = strings.ReplaceAll(clean, ",", "")
		} else {
			clean = strings.ReplaceAll(clean, ",", ".")
		}
	case strings.Count(clean, ".") > 1:
		clean = strings.ReplaceAll(clean, ".", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return d, nil
}
