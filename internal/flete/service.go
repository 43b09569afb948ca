package flete

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/page"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=flete
type Repository interface {
	CreateFlete(ctx context.Context, f *Flete) error
	GetFlete(ctx context.Context, id uuid.UUID) (*Flete, error)
	ListFletes(ctx context.Context, filter ListFilter) ([]*Flete, int, error)
	UpdateFlete(ctx context.Context, f *Flete) error
	ReplaceFlete(ctx context.Context, f *Flete) error
	DeleteFlete(ctx context.Context, id uuid.UUID) error

	CreateFactura(ctx context.Context, fa *Factura) error
	UpdateFactura(ctx context.Context, fa *Factura) error
	DeleteFactura(ctx context.Context, fleteID, facturaID uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Statuses []Status
	DriverID *uuid.UUID
	Search   string // Matches fo_number or destination
	Page     page.Request
}

// OriginPayment is the client payment supplied when a flete moves to Pagado.
type OriginPayment struct {
	PaidAt     *time.Time
	AmountPaid *int64
	Currency   money.Currency
	Rate       *decimal.Decimal
}

// PersonnelPayment records that the driver or helper was paid.
type PersonnelPayment struct {
	Amount   *int64
	PaidAt   time.Time
	Currency money.Currency
	Rate     *decimal.Decimal
}

func (p Params) toFlete() *Flete {
	f := &Flete{
		FONumber:      p.FONumber,
		DriverID:      p.DriverID,
		ClientID:      p.ClientID,
		VehicleID:     p.VehicleID,
		Destination:   p.Destination,
		EstimatedCost: p.EstimatedCost,
		PaidAt:        p.PaidAt,
		AmountPaid:    p.AmountPaid,
		Currency:      p.Currency,
		Rate:          p.Rate,
		Driver:        p.Driver,
		Helper:        p.Helper,
	}

	if f.Currency == "" {
		f.Currency = money.USD
	}

	for _, role := range []Role{RoleDriver, RoleHelper} {
		if pp := f.Personnel(role); pp.Currency == "" {
			pp.Currency = money.USD
		}
	}

	for _, fp := range p.Facturas {
		f.Facturas = append(f.Facturas, fp.toFactura(uuid.Nil))
	}

	return f
}

// build validates params and applies the side effects of entering params.Status.
func build(params Params) (*Flete, error) {
	errs := validate.Struct(params)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	f, errs := ApplyStatusTransition(params.toFlete(), params.Status)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	if err := Validate(f).OrNil(); err != nil {
		return nil, err
	}

	return f, nil
}

// Create stores a flete together with its facturas.
func (s *Service) Create(ctx context.Context, params Params) (*Flete, error) {
	f, err := build(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateFlete(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Flete, error) {
	return s.repo.GetFlete(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) (page.Result[*Flete], error) {
	filter.Page = filter.Page.Normalize()

	fletes, total, err := s.repo.ListFletes(ctx, filter)
	if err != nil {
		return page.Result[*Flete]{}, err
	}

	return page.NewResult(fletes, total, filter.Page), nil
}

// Update replaces every editable field of the flete and its facturas.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*Flete, error) {
	existing, err := s.repo.GetFlete(ctx, id)
	if err != nil {
		return nil, err
	}

	f, err := build(params)
	if err != nil {
		return nil, err
	}

	f.ID = existing.ID
	f.CreatedAt = existing.CreatedAt

	for _, fa := range f.Facturas {
		fa.FleteID = existing.ID
	}

	if err := s.repo.ReplaceFlete(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

// ChangeStatus moves a flete to next. The origin payment is only read when next is Pagado.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, next Status, payment OriginPayment) (*Flete, error) {
	f, err := s.repo.GetFlete(ctx, id)
	if err != nil {
		return nil, err
	}

	if next == StatusPaid {
		f.PaidAt = payment.PaidAt
		f.AmountPaid = payment.AmountPaid
		f.Currency = payment.Currency
		f.Rate = payment.Rate
	}

	updated, errs := ApplyStatusTransition(f, next)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFlete(ctx, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// PayPersonnel marks the driver or helper as paid. A flete still in transit cannot pay its personnel.
func (s *Service) PayPersonnel(ctx context.Context, id uuid.UUID, role Role, payment PersonnelPayment) (*Flete, error) {
	if !role.Valid() {
		return nil, validate.Errors{{Field: "role", Message: "Rol no válido"}}
	}

	f, err := s.repo.GetFlete(ctx, id)
	if err != nil {
		return nil, err
	}

	p := f.Personnel(role)
	if payment.Amount != nil {
		p.Amount = payment.Amount
	}

	p.Paid = true
	p.PaidAt = &payment.PaidAt
	p.Currency = payment.Currency
	p.Rate = payment.Rate

	if p.Currency == "" {
		p.Currency = money.USD
	}

	if payment.PaidAt.IsZero() {
		p.PaidAt = nil
	}

	if err := validatePersonnel(f, role).OrNil(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFlete(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteFlete(ctx, id)
}

func (s *Service) AddFactura(ctx context.Context, fleteID uuid.UUID, params FacturaParams) (*Factura, error) {
	if err := validate.Struct(params).OrNil(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetFlete(ctx, fleteID); err != nil {
		return nil, err
	}

	fa := params.toFactura(fleteID)
	if err := s.repo.CreateFactura(ctx, fa); err != nil {
		return nil, err
	}

	return fa, nil
}

func (s *Service) UpdateFactura(ctx context.Context, fleteID, facturaID uuid.UUID, params FacturaParams) (*Factura, error) {
	if err := validate.Struct(params).OrNil(); err != nil {
		return nil, err
	}

	fa := params.toFactura(fleteID)
	fa.ID = facturaID

	if err := s.repo.UpdateFactura(ctx, fa); err != nil {
		return nil, err
	}

	return fa, nil
}

func (s *Service) DeleteFactura(ctx context.Context, fleteID, facturaID uuid.UUID) error {
	return s.repo.DeleteFactura(ctx, fleteID, facturaID)
}
