package expense

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/money"
)

var ErrNotFound = errors.New("expense not found")

type Category string

const (
	CategoryFuel        Category = "Combustible"
	CategoryTolls       Category = "Peajes"
	CategoryPerDiem     Category = "Viáticos"
	CategoryMaintenance Category = "Mantenimiento"
	CategoryRepairs     Category = "Reparaciones"
	CategoryLodging     Category = "Hospedaje"
	CategoryFood        Category = "Alimentación"
	CategoryOther       Category = "Otros"
)

var Categories = []Category{
	CategoryFuel, CategoryTolls, CategoryPerDiem, CategoryMaintenance,
	CategoryRepairs, CategoryLodging, CategoryFood, CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}

// ParseCategory matches s against the known categories ignoring case.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)

	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}

	return "", false
}

// Expense is a gasto. The amount in Currency is authoritative; the other one is derived from Rate.
type Expense struct {
	ID             uuid.UUID
	FleteID        *uuid.UUID
	Category       Category
	Description    string
	RawDescription string
	ExpenseDate    time.Time
	Currency       money.Currency
	Divisa         *int64 // Amount in cents, USD
	Bolivares      *int64 // Amount in cents, VES
	Rate           *decimal.Decimal
	RateType       *money.RateType
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// Amount returns the authoritative amount in cents.
func (e *Expense) Amount() int64 {
	return native(e.Currency, e.Divisa, e.Bolivares)
}

func native(c money.Currency, divisa, bolivares *int64) int64 {
	p := divisa
	if c == money.VES {
		p = bolivares
	}

	if p == nil {
		return 0
	}

	return *p
}

// Derive fills the secondary amount from the authoritative one when a rate is known.
func Derive(e *Expense) error {
	if e.Rate == nil {
		return nil
	}

	switch e.Currency {
	case money.VES:
		if e.Bolivares == nil {
			return nil
		}

		usd, err := money.ToOrigin(*e.Bolivares, *e.Rate)
		if err != nil {
			return fmt.Errorf("deriving divisa: %w", err)
		}

		e.Divisa = &usd
	case money.USD:
		if e.Divisa == nil {
			return nil
		}

		ves, err := money.ToVES(*e.Divisa, *e.Rate)
		if err != nil {
			return fmt.Errorf("deriving bolivares: %w", err)
		}

		e.Bolivares = &ves
	}

	return nil
}

// Key identifies an expense for duplicate detection on import.
type Key struct {
	Date           string
	Currency       money.Currency
	Amount         int64
	RawDescription string
}

func (e *Expense) Key() Key {
	return Key{
		Date:           e.ExpenseDate.Format(time.DateOnly),
		Currency:       e.Currency,
		Amount:         e.Amount(),
		RawDescription: e.RawDescription,
	}
}

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

func (g Granularity) Valid() bool {
	return g == GranularityDay || g == GranularityMonth
}

// Total is the sum of expenses within one period.
type Total struct {
	Period    time.Time `json:"period"`
	Bolivares int64     `json:"pago_bolivares"`
	Divisa    int64     `json:"pago_divisa"`
}
