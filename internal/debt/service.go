package debt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=debt
type Repository interface {
	CreateDebt(ctx context.Context, d *Debt) error
	GetDebt(ctx context.Context, id uuid.UUID) (*Debt, error)
	UpdateDebt(ctx context.Context, d *Debt) error
	DeleteDebt(ctx context.Context, id uuid.UUID) error
	ListDebts(ctx context.Context) ([]*Debt, error)

	CreatePayment(ctx context.Context, p *Payment) error
	ListPayments(ctx context.Context, filter PaymentFilter) ([]*Payment, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	PersonaName string           `json:"persona_name" validate:"required"`
	Description string           `json:"description"`
	Currency    money.Currency   `json:"original_currency"`
	TotalDivisa int64            `json:"total_divisa" validate:"gt=0"`
	Rate        *decimal.Decimal `json:"tasa_cambio"`
	DueDate     *time.Time       `json:"due_date"`
}

// UpdateParams edits debt metadata. Amounts are fixed once the debt exists.
type UpdateParams struct {
	PersonaName *string
	Description *string
	DueDate     *time.Time
}

type PaymentFilter struct {
	DebtID *uuid.UUID
}

type PaymentParams struct {
	DebtID      uuid.UUID
	Description string
	PaymentDate time.Time
	Type        validate.PaymentType
	Divisa      *int64
	Bolivares   *int64
	Rate        *decimal.Decimal
	RateType    *money.RateType
}

func (s *Service) CreateDebt(ctx context.Context, params CreateParams) (*Debt, error) {
	if params.Currency == "" {
		params.Currency = money.USD
	}

	errs := validate.Struct(params)

	// Only divisa debts can be created; VES origin is modelled but not offered.
	if params.Currency != money.USD {
		errs.Add(validate.FieldCurrency, validate.MsgCurrencyInvalid)
	}

	if params.Rate != nil && !params.Rate.IsPositive() {
		errs.Add(validate.FieldRate, validate.MsgRatePositive)
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	d := &Debt{
		PersonaName: params.PersonaName,
		Description: params.Description,
		Currency:    params.Currency,
		TotalDivisa: params.TotalDivisa,
		Rate:        params.Rate,
		DueDate:     params.DueDate,
	}
	if err := s.repo.CreateDebt(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) UpdateDebt(ctx context.Context, id uuid.UUID, params UpdateParams) (*Debt, error) {
	d, err := s.repo.GetDebt(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.PersonaName != nil {
		if *params.PersonaName == "" {
			return nil, validate.Errors{{Field: "persona_name", Message: validate.MsgRequired}}
		}

		d.PersonaName = *params.PersonaName
	}

	if params.Description != nil {
		d.Description = *params.Description
	}

	if params.DueDate != nil {
		d.DueDate = params.DueDate
	}

	if err := s.repo.UpdateDebt(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) DeleteDebt(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDebt(ctx, id)
}

// Get returns the debt with its balance recomputed from every recorded payment.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Balance, error) {
	d, err := s.repo.GetDebt(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.repo.ListPayments(ctx, PaymentFilter{DebtID: &d.ID})
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	return Reconcile(d, payments)
}

// List returns every debt with its balance, newest first.
func (s *Service) List(ctx context.Context) ([]*Balance, error) {
	debts, err := s.repo.ListDebts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}

	payments, err := s.repo.ListPayments(ctx, PaymentFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	balances := make([]*Balance, 0, len(debts))

	for _, d := range debts {
		b, err := Reconcile(d, payments)
		if err != nil {
			return nil, err
		}

		balances = append(balances, b)
	}

	return balances, nil
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	balances, err := s.List(ctx)
	if err != nil {
		return Summary{}, err
	}

	return Summarize(balances), nil
}

// RecordPayment validates and stores a payment against an existing debt.
func (s *Service) RecordPayment(ctx context.Context, params PaymentParams) (*Payment, error) {
	d, err := s.repo.GetDebt(ctx, params.DebtID)
	if err != nil {
		return nil, err
	}

	amounts, errs := validate.DebtPayments.Payment(validate.Payment{
		Type:      params.Type,
		Divisa:    params.Divisa,
		Bolivares: params.Bolivares,
		Rate:      params.Rate,
		RateType:  params.RateType,
	})

	if params.PaymentDate.IsZero() {
		errs.Add("payment_date", validate.MsgRequired)
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	p := &Payment{
		DebtID:      d.ID,
		Description: params.Description,
		PaymentDate: params.PaymentDate,
		Currency:    d.Currency,
		Divisa:      amounts.Divisa,
		Bolivares:   amounts.Bolivares,
		Rate:        amounts.Rate,
		RateType:    amounts.RateType,
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Payments lists the payments of one debt, newest first.
func (s *Service) Payments(ctx context.Context, debtID uuid.UUID) ([]*Payment, error) {
	if _, err := s.repo.GetDebt(ctx, debtID); err != nil {
		return nil, err
	}

	return s.repo.ListPayments(ctx, PaymentFilter{DebtID: &debtID})
}
