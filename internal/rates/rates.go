// Package rates supplies the VES per USD exchange rates used to convert bolívares payments.
package rates

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/money"
)

// ErrFetch means no live rate could be obtained. Callers fall back to a custom rate.
var ErrFetch = errors.New("exchange rates unavailable")

type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "fetching exchange rates: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Quote is one published rate.
type Quote struct {
	Type       money.RateType  `json:"type"`
	Price      decimal.Decimal `json:"price"`
	LastUpdate string          `json:"last_update"`
}

type Snapshot struct {
	BCV       Quote     `json:"bcv"`
	Parallel  Quote     `json:"paralelo"`
	Average   Quote     `json:"promedio"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Rate returns the price of rate type t. Custom rates are never part of a snapshot.
func (s Snapshot) Rate(t money.RateType) (decimal.Decimal, bool) {
	switch t {
	case money.RateBCV:
		return s.BCV.Price, s.BCV.Price.IsPositive()
	case money.RateParallel:
		return s.Parallel.Price, s.Parallel.Price.IsPositive()
	case money.RateAverage:
		return s.Average.Price, s.Average.Price.IsPositive()
	}

	return decimal.Zero, false
}

// Average is the mean of the BCV and parallel prices rounded half up to two places.
func Average(bcv, parallel decimal.Decimal) decimal.Decimal {
	return bcv.Add(parallel).Div(decimal.NewFromInt(2)).Round(2)
}
