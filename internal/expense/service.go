package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/page"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error

	ListExpenses(ctx context.Context, filter ListFilter) ([]*Expense, int, error)
	SumExpenses(ctx context.Context, filter ListFilter, g Granularity) ([]Total, error)

	BeginImport(ctx context.Context, minDate, maxDate time.Time) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, keys []Key) ([]*Expense, error)
	CreateExpenses(ctx context.Context, expenses []*Expense) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	FleteID        *uuid.UUID       `json:"flete_id"`
	Category       Category         `json:"category" validate:"required"`
	Description    string           `json:"description"`
	RawDescription string           `json:"raw_description"`
	ExpenseDate    time.Time        `json:"expense_date" validate:"required"`
	Currency       money.Currency   `json:"original_currency" validate:"required"`
	Divisa         *int64           `json:"pago_divisa"`
	Bolivares      *int64           `json:"pago_bolivares"`
	Rate           *decimal.Decimal `json:"tasa_cambio"`
	RateType       *money.RateType  `json:"tipo_tasa"`
}

func (p CreateParams) Key() Key {
	return Key{
		Date:           p.ExpenseDate.Format(time.DateOnly),
		Currency:       p.Currency,
		Amount:         native(p.Currency, p.Divisa, p.Bolivares),
		RawDescription: p.RawDescription,
	}
}

// Validate runs the field rules and the currency rules of an expense.
func (p CreateParams) Validate() validate.Errors {
	errs := validate.Struct(p)

	if p.Category != "" && !p.Category.Valid() {
		errs.Add("category", "Categoría no válida")
	}

	if p.Currency != "" {
		errs = append(errs, validate.Expenses.Amounts(validate.Amounts{
			Currency:  p.Currency,
			Divisa:    p.Divisa,
			Bolivares: p.Bolivares,
			Rate:      p.Rate,
			RateType:  p.RateType,
		})...)
	}

	return errs
}

func (p CreateParams) toExpense() (*Expense, error) {
	e := &Expense{
		FleteID:        p.FleteID,
		Category:       p.Category,
		Description:    p.Description,
		RawDescription: p.RawDescription,
		ExpenseDate:    p.ExpenseDate,
		Currency:       p.Currency,
		Divisa:         p.Divisa,
		Bolivares:      p.Bolivares,
		Rate:           p.Rate,
		RateType:       p.RateType,
	}

	if err := Derive(e); err != nil {
		return nil, err
	}

	return e, nil
}

type ListFilter struct {
	Category   *Category
	Currencies []money.Currency
	RateTypes  []money.RateType
	From       *time.Time
	To         *time.Time
	FleteID    *uuid.UUID
	Page       page.Request
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	if err := params.Validate().OrNil(); err != nil {
		return nil, err
	}

	e, err := params.toExpense()
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params CreateParams) (*Expense, error) {
	existing, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := params.Validate().OrNil(); err != nil {
		return nil, err
	}

	e, err := params.toExpense()
	if err != nil {
		return nil, err
	}

	e.ID = existing.ID
	e.CreatedAt = existing.CreatedAt

	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, id)
}

// List returns one page of expenses, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) (page.Result[*Expense], error) {
	filter.Page = filter.Page.Normalize()

	expenses, total, err := s.repo.ListExpenses(ctx, filter)
	if err != nil {
		return page.Result[*Expense]{}, err
	}

	return page.NewResult(expenses, total, filter.Page), nil
}

// Totals sums the filtered expenses per day or per month. Paging is ignored.
func (s *Service) Totals(ctx context.Context, filter ListFilter, g Granularity) ([]Total, error) {
	if !g.Valid() {
		return nil, validate.Errors{{Field: "granularity", Message: "Valor no válido"}}
	}

	return s.repo.SumExpenses(ctx, filter, g)
}

type ImportResult struct {
	Imported  []*Expense
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Expense
}

// validateBatch reports the violations of every row, prefixed by its position.
func validateBatch(params []CreateParams) error {
	var errs validate.Errors

	for i, p := range params {
		errs = append(errs, p.Validate().Prefix(fmt.Sprintf("filas[%d]", i))...)
	}

	return errs.OrNil()
}

// ImportBatch stores the rows unless any of them already exists. On conflict
// nothing is written and the caller decides through CreateBatch.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	if err := validateBatch(params); err != nil {
		return nil, err
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	keys := make([]Key, len(params))
	for i, p := range params {
		keys[i] = p.Key()
	}

	duplicates, err := itx.FindDuplicates(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[Key]*Expense, len(duplicates))
	for _, d := range duplicates {
		lookup[d.Key()] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		existing, found := lookup[p.Key()]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	expenses, err := paramsToExpenses(newParams)
	if err != nil {
		return nil, err
	}

	if err := itx.CreateExpenses(ctx, expenses); err != nil {
		return nil, fmt.Errorf("create expenses: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: expenses}, nil
}

// CreateBatch stores the rows without duplicate checks, under the same import lock.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Expense, error) {
	if len(params) == 0 {
		return nil, nil
	}

	if err := validateBatch(params); err != nil {
		return nil, err
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	expenses, err := paramsToExpenses(params)
	if err != nil {
		return nil, err
	}

	if err := itx.CreateExpenses(ctx, expenses); err != nil {
		return nil, fmt.Errorf("create expenses: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return expenses, nil
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].ExpenseDate
	maxDate := params[0].ExpenseDate

	for _, p := range params[1:] {
		if p.ExpenseDate.Before(minDate) {
			minDate = p.ExpenseDate
		}

		if p.ExpenseDate.After(maxDate) {
			maxDate = p.ExpenseDate
		}
	}

	return minDate, maxDate
}

func paramsToExpenses(params []CreateParams) ([]*Expense, error) {
	expenses := make([]*Expense, len(params))

	for i, p := range params {
		e, err := p.toExpense()
		if err != nil {
			return nil, err
		}

		expenses[i] = e
	}

	return expenses, nil
}
