package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fletes/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectExpenseColumns = `
	id, flete_id, category, description, raw_description, expense_date, original_currency,
	pago_divisa, pago_bolivares, tasa_cambio, tipo_tasa, created_at, updated_at
`

func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	var desc, rawDesc sql.NullString

	if err := s.Scan(
		&e.ID, &e.FleteID, &e.Category, &desc, &rawDesc, &e.ExpenseDate, &e.Currency,
		&e.Divisa, &e.Bolivares, &e.Rate, &e.RateType, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Description = desc.String
	e.RawDescription = rawDesc.String

	return &e, nil
}

const insertExpense = `
	INSERT INTO gastos (flete_id, category, description, raw_description, expense_date, original_currency,
		pago_divisa, pago_bolivares, tasa_cambio, tipo_tasa, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

func insertArgs(e *expense.Expense) []any {
	return []any{
		e.FleteID, e.Category, e.Description, e.RawDescription, e.ExpenseDate, e.Currency,
		e.Divisa, e.Bolivares, e.Rate, e.RateType,
	}
}

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	if err := s.db.QueryRowContext(ctx, insertExpense, insertArgs(e)...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM gastos WHERE id = $1`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE gastos
		SET flete_id = $1, category = $2, description = $3, raw_description = $4, expense_date = $5,
			original_currency = $6, pago_divisa = $7, pago_bolivares = $8, tasa_cambio = $9, tipo_tasa = $10,
			updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at
	`

	args := append(insertArgs(e), e.ID)

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return expense.ErrNotFound
		}

		return fmt.Errorf("updating expense: %w", err)
	}

	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM gastos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return expense.ErrNotFound
	}

	return nil
}

// where builds the WHERE clause of filter. Placeholders start at $1.
func where(filter expense.ListFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != nil {
		conds = append(conds, "category = "+next(*filter.Category))
	}

	if len(filter.Currencies) > 0 {
		ph := make([]string, len(filter.Currencies))
		for i, c := range filter.Currencies {
			ph[i] = next(c)
		}

		conds = append(conds, "original_currency IN ("+strings.Join(ph, ", ")+")")
	}

	if len(filter.RateTypes) > 0 {
		var ph []string
		for _, rt := range filter.RateTypes {
			for _, name := range rt.StoredNames() {
				ph = append(ph, next(name))
			}
		}

		conds = append(conds, "tipo_tasa IN ("+strings.Join(ph, ", ")+")")
	}

	if filter.From != nil {
		conds = append(conds, "expense_date >= "+next(*filter.From))
	}

	if filter.To != nil {
		conds = append(conds, "expense_date <= "+next(*filter.To))
	}

	if filter.FleteID != nil {
		conds = append(conds, "flete_id = "+next(*filter.FleteID))
	}

	if len(conds) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *Store) ListExpenses(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, int, error) {
	cond, args := where(filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM gastos`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting expenses: %w", err)
	}

	query := `SELECT ` + selectExpenseColumns + ` FROM gastos` + cond +
		fmt.Sprintf(" ORDER BY expense_date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	args = append(args, filter.Page.Limit(), filter.Page.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating expenses: %w", err)
	}

	return expenses, total, nil
}

// SumExpenses groups the filtered expenses by day or month, oldest first.
func (s *Store) SumExpenses(ctx context.Context, filter expense.ListFilter, g expense.Granularity) ([]expense.Total, error) {
	cond, args := where(filter)

	// g is checked by the service; it is one of two literals.
	query := `
		SELECT date_trunc('` + string(g) + `', expense_date) AS period,
			COALESCE(SUM(pago_bolivares), 0), COALESCE(SUM(pago_divisa), 0)
		FROM gastos` + cond + `
		GROUP BY period
		ORDER BY period ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summing expenses: %w", err)
	}
	defer rows.Close()

	var totals []expense.Total

	for rows.Next() {
		var t expense.Total
		if err := rows.Scan(&t.Period, &t.Bolivares, &t.Divisa); err != nil {
			return nil, fmt.Errorf("scanning total: %w", err)
		}

		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating totals: %w", err)
	}

	return totals, nil
}

func importLockKey(minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(minDate.Format(time.DateOnly)))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format(time.DateOnly)))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

// BeginImport opens a transaction holding an advisory lock on the date range, so
// two imports of the same statement cannot both pass the duplicate check.
func (s *Store) BeginImport(ctx context.Context, minDate, maxDate time.Time) (expense.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey(minDate, maxDate)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, keys []expense.Key) ([]*expense.Expense, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	minDate, maxDate := keys[0].Date, keys[0].Date
	keySet := make(map[expense.Key]struct{}, len(keys))

	for _, k := range keys {
		minDate = min(minDate, k.Date)
		maxDate = max(maxDate, k.Date)
		keySet[k] = struct{}{}
	}

	query := `SELECT ` + selectExpenseColumns + `
		FROM gastos
		WHERE expense_date >= $1 AND expense_date <= $2
		ORDER BY expense_date ASC`

	rows, err := itx.tx.QueryContext(ctx, query, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		if _, found := keySet[e.Key()]; !found {
			continue
		}

		duplicates = append(duplicates, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateExpenses(ctx context.Context, expenses []*expense.Expense) error {
	for _, e := range expenses {
		if err := itx.tx.QueryRowContext(ctx, insertExpense, insertArgs(e)...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return fmt.Errorf("creating expense: %w", err)
		}
	}

	return nil
}
