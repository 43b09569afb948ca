package flete

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/money"
)

var (
	ErrNotFound        = errors.New("flete not found")
	ErrFacturaNotFound = errors.New("factura not found")
)

// Status is the stage of a freight job. Any status may follow any other.
type Status string

const (
	StatusInTransit  Status = "En Transito"
	StatusDispatched Status = "Despachado"
	StatusRelated    Status = "Relacionado"
	StatusInvoiced   Status = "Facturado"
	StatusPaid       Status = "Pagado"
)

var Statuses = []Status{StatusInTransit, StatusDispatched, StatusRelated, StatusInvoiced, StatusPaid}

func (s Status) Valid() bool {
	switch s {
	case StatusInTransit, StatusDispatched, StatusRelated, StatusInvoiced, StatusPaid:
		return true
	}

	return false
}

// Role names a personnel sub-ledger.
type Role string

const (
	RoleDriver Role = "chofer"
	RoleHelper Role = "ayudante"
)

func (r Role) Valid() bool {
	return r == RoleDriver || r == RoleHelper
}

// Personnel is the compensation owed to the driver or the helper of a flete.
type Personnel struct {
	Amount   *int64           `json:"monto"` // Amount owed in cents, divisa
	Paid     bool             `json:"pagado"`
	PaidAt   *time.Time       `json:"fecha_pago"`
	Currency money.Currency   `json:"moneda"` // Currency the payment was made in
	Rate     *decimal.Decimal `json:"tasa_cambio"`
}

// reset clears the payment, keeping the amount owed.
func (p *Personnel) reset() {
	p.Paid = false
	p.PaidAt = nil
	p.Currency = money.USD
	p.Rate = nil
}

// Flete is a freight job.
type Flete struct {
	ID            uuid.UUID
	FONumber      string
	DriverID      *uuid.UUID
	ClientID      uuid.UUID
	VehicleID     *uuid.UUID
	Status        Status
	Destination   string
	EstimatedCost *int64 // Amount in cents

	// Payment received from the client. Only set while Status is Pagado.
	PaidAt        *time.Time
	AmountPaid    *int64 // Amount in cents, in Currency
	Currency      money.Currency
	Rate          *decimal.Decimal
	AmountPaidUSD *int64 // Derived
	AmountPaidVES *int64 // Derived

	Driver Personnel
	Helper Personnel

	Facturas  []*Factura // Loaded by Get only
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Personnel returns the sub-ledger for role.
func (f *Flete) Personnel(role Role) *Personnel {
	if role == RoleHelper {
		return &f.Helper
	}

	return &f.Driver
}

func (f *Flete) clearOriginPayment() {
	f.PaidAt = nil
	f.AmountPaid = nil
	f.Currency = money.USD
	f.Rate = nil
	f.AmountPaidUSD = nil
	f.AmountPaidVES = nil
}

// Factura is an invoice issued for a flete.
type Factura struct {
	ID            uuid.UUID
	FleteID       uuid.UUID
	InvoiceNumber string
	ClientName    string
	LoadDate      time.Time
	DeliveryDate  *time.Time
	StateDest     string
	CityDest      string
	WeightKg      *float64
	Observation   string
	DriverID      *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
