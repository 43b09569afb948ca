package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidRate is matched by every *InvalidRateError.
var ErrInvalidRate = errors.New("invalid exchange rate")

// ErrAmountRange means an amount in cents does not fit in an int64.
var ErrAmountRange = errors.New("amount out of range")

var (
	minCents = decimal.NewFromInt(math.MinInt64)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// InvalidRateError reports a conversion attempted with a rate that is not positive.
type InvalidRateError struct {
	Rate decimal.Decimal
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("invalid exchange rate %s: must be greater than zero", e.Rate.String())
}

func (e *InvalidRateError) Is(target error) bool {
	return target == ErrInvalidRate
}

func checkRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return &InvalidRateError{Rate: rate}
	}

	return nil
}

// ToOrigin converts bolívares to divisa: ves / rate, rounded half up to the cent.
// Both amounts are in cents and rate is VES per USD.
func ToOrigin(ves int64, rate decimal.Decimal) (int64, error) {
	if err := checkRate(rate); err != nil {
		return 0, err
	}

	return cents(decimal.NewFromInt(ves).DivRound(rate, 0))
}

// ToVES converts divisa to bolívares: usd * rate, rounded half up to the cent.
func ToVES(usd int64, rate decimal.Decimal) (int64, error) {
	if err := checkRate(rate); err != nil {
		return 0, err
	}

	return cents(decimal.NewFromInt(usd).Mul(rate).Round(0))
}

// FromCents returns the amount as a decimal with two places.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToCents rounds a decimal amount half up to whole cents.
func ToCents(d decimal.Decimal) (int64, error) {
	return cents(d.Shift(2).Round(0))
}

func cents(d decimal.Decimal) (int64, error) {
	if d.LessThan(minCents) || d.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%s cents: %w", d.String(), ErrAmountRange)
	}

	return d.IntPart(), nil
}
