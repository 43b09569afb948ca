package debt

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/debt"
	"github.com/MrJamesThe3rd/fletes/internal/http/render"
	"github.com/MrJamesThe3rd/fletes/internal/money"
)

type balanceResponse struct {
	ID          uuid.UUID        `json:"id"`
	PersonaName string           `json:"persona_name"`
	Description string           `json:"description"`
	Currency    money.Currency   `json:"original_currency"`
	TotalDivisa render.Amount    `json:"total_divisa"`
	Rate        *decimal.Decimal `json:"tasa_cambio,omitempty"`
	DueDate     *render.Date     `json:"due_date,omitempty"`
	Paid        render.Amount    `json:"total_pagado"`
	Remaining   render.Amount    `json:"saldo_restante"`
	Overpaid    render.Amount    `json:"excedente"`
	Status      debt.Status      `json:"estado"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

type summaryResponse struct {
	TotalDebt      render.Amount `json:"total_deuda"`
	TotalPaid      render.Amount `json:"total_pagado"`
	TotalRemaining render.Amount `json:"total_restante"`
	PercentPaid    int64         `json:"porcentaje_pagado"`
}

type listResponse struct {
	Items   []balanceResponse `json:"items"`
	Summary summaryResponse   `json:"summary"`
}

type paymentResponse struct {
	ID          uuid.UUID        `json:"id"`
	DebtID      uuid.UUID        `json:"debt_id"`
	Description string           `json:"description"`
	PaymentDate render.Date      `json:"payment_date"`
	Currency    money.Currency   `json:"original_currency"`
	Divisa      *render.Amount   `json:"pago_divisa"`
	Bolivares   *render.Amount   `json:"pago_bolivares"`
	Rate        *decimal.Decimal `json:"tasa_cambio"`
	RateType    *money.RateType  `json:"tipo_tasa"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toBalanceResponse(b *debt.Balance) balanceResponse {
	d := b.Debt

	return balanceResponse{
		ID:          d.ID,
		PersonaName: d.PersonaName,
		Description: d.Description,
		Currency:    d.Currency,
		TotalDivisa: render.Amount(d.TotalDivisa),
		Rate:        d.Rate,
		DueDate:     render.DatePtr(d.DueDate),
		Paid:        render.Amount(b.Paid),
		Remaining:   render.Amount(b.Remaining),
		Overpaid:    render.Amount(b.Overpaid),
		Status:      b.Status,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toBalanceResponseList(balances []*debt.Balance) []balanceResponse {
	resp := make([]balanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = toBalanceResponse(b)
	}

	return resp
}

func toSummaryResponse(s debt.Summary) summaryResponse {
	return summaryResponse{
		TotalDebt:      render.Amount(s.TotalDebt),
		TotalPaid:      render.Amount(s.TotalPaid),
		TotalRemaining: render.Amount(s.TotalRemaining),
		PercentPaid:    s.PercentPaid,
	}
}

func toPaymentResponse(p *debt.Payment) paymentResponse {
	return paymentResponse{
		ID:          p.ID,
		DebtID:      p.DebtID,
		Description: p.Description,
		PaymentDate: render.Date(p.PaymentDate),
		Currency:    p.Currency,
		Divisa:      render.FromCents(p.Divisa),
		Bolivares:   render.FromCents(p.Bolivares),
		Rate:        p.Rate,
		RateType:    p.RateType,
		CreatedAt:   p.CreatedAt,
	}
}

func toPaymentResponseList(payments []*debt.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPaymentResponse(p)
	}

	return resp
}
