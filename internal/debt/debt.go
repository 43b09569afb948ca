package debt

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/money"
)

var (
	ErrNotFound        = errors.New("debt not found")
	ErrPaymentNotFound = errors.New("payment not found")
)

// Status is the settlement state of a debt. It is derived from the remaining
// balance on every read and never stored.
type Status string

const (
	StatusPaid    Status = "Pagado"
	StatusPartial Status = "Parcial"
	StatusPending Status = "Pendiente"
)

// Debt is an amount owed to a named creditor.
type Debt struct {
	ID          uuid.UUID
	PersonaName string
	Description string
	Currency    money.Currency
	TotalDivisa int64            // Amount in cents
	Rate        *decimal.Decimal // Rate agreed when the debt was taken, not used for payments
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Payment is a single settlement against one debt. Exactly one of Divisa and
// Bolivares is set; Bolivares always comes with Rate and RateType.
type Payment struct {
	ID          uuid.UUID
	DebtID      uuid.UUID
	Description string
	PaymentDate time.Time
	Currency    money.Currency // Copied from the debt when the payment is recorded
	Divisa      *int64
	Bolivares   *int64
	Rate        *decimal.Decimal
	RateType    *money.RateType
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
