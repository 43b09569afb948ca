package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/expense"
	"github.com/MrJamesThe3rd/fletes/internal/http/render"
	"github.com/MrJamesThe3rd/fletes/internal/money"
)

// Params is an expense as entered by the client. It is shared with the import confirmation.
type Params struct {
	FleteID        *uuid.UUID       `json:"flete_id"`
	Category       expense.Category `json:"category"`
	Description    string           `json:"description"`
	RawDescription string           `json:"raw_description"`
	ExpenseDate    render.Date      `json:"expense_date"`
	Currency       money.Currency   `json:"original_currency"`
	Divisa         *render.Amount   `json:"pago_divisa"`
	Bolivares      *render.Amount   `json:"pago_bolivares"`
	Rate           *decimal.Decimal `json:"tasa_cambio"`
	RateType       *money.RateType  `json:"tipo_tasa"`
}

func (p Params) ToCreateParams() expense.CreateParams {
	return expense.CreateParams{
		FleteID:        p.FleteID,
		Category:       p.Category,
		Description:    p.Description,
		RawDescription: p.RawDescription,
		ExpenseDate:    p.ExpenseDate.Time(),
		Currency:       p.Currency,
		Divisa:         render.Cents(p.Divisa),
		Bolivares:      render.Cents(p.Bolivares),
		Rate:           p.Rate,
		RateType:       p.RateType,
	}
}

func FromCreateParams(p expense.CreateParams) Params {
	return Params{
		FleteID:        p.FleteID,
		Category:       p.Category,
		Description:    p.Description,
		RawDescription: p.RawDescription,
		ExpenseDate:    render.Date(p.ExpenseDate),
		Currency:       p.Currency,
		Divisa:         render.FromCents(p.Divisa),
		Bolivares:      render.FromCents(p.Bolivares),
		Rate:           p.Rate,
		RateType:       p.RateType,
	}
}

type Response struct {
	ID             uuid.UUID        `json:"id"`
	FleteID        *uuid.UUID       `json:"flete_id"`
	Category       expense.Category `json:"category"`
	Description    string           `json:"description"`
	RawDescription string           `json:"raw_description,omitempty"`
	ExpenseDate    render.Date      `json:"expense_date"`
	Currency       money.Currency   `json:"original_currency"`
	Divisa         *render.Amount   `json:"pago_divisa"`
	Bolivares      *render.Amount   `json:"pago_bolivares"`
	Rate           *decimal.Decimal `json:"tasa_cambio"`
	RateType       *money.RateType  `json:"tipo_tasa"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      *time.Time       `json:"updated_at,omitempty"`
}

func ToResponse(e *expense.Expense) Response {
	return Response{
		ID:             e.ID,
		FleteID:        e.FleteID,
		Category:       e.Category,
		Description:    e.Description,
		RawDescription: e.RawDescription,
		ExpenseDate:    render.Date(e.ExpenseDate),
		Currency:       e.Currency,
		Divisa:         render.FromCents(e.Divisa),
		Bolivares:      render.FromCents(e.Bolivares),
		Rate:           e.Rate,
		RateType:       e.RateType,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func ToResponseList(expenses []*expense.Expense) []Response {
	resp := make([]Response, len(expenses))
	for i, e := range expenses {
		resp[i] = ToResponse(e)
	}

	return resp
}

type totalResponse struct {
	Period    render.Date   `json:"period"`
	Divisa    render.Amount `json:"pago_divisa"`
	Bolivares render.Amount `json:"pago_bolivares"`
}
