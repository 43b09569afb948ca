package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fletes/internal/debt"
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

const selectDebtColumns = `
	id, persona_name, description, original_currency, total_divisa, tasa_cambio,
	due_date, created_at, updated_at
`

func scanDebt(s scanner) (*debt.Debt, error) {
	var d debt.Debt

	var desc sql.NullString

	if err := s.Scan(
		&d.ID, &d.PersonaName, &desc, &d.Currency, &d.TotalDivisa, &d.Rate,
		&d.DueDate, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d.Description = desc.String

	return &d, nil
}

const selectPaymentColumns = `
	id, deuda_id, description, payment_date, original_currency, tasa_cambio,
	pago_divisa, pago_bolivares, tipo_tasa, created_at, updated_at
`

func scanPayment(s scanner) (*debt.Payment, error) {
	var p debt.Payment

	var desc sql.NullString

	if err := s.Scan(
		&p.ID, &p.DebtID, &desc, &p.PaymentDate, &p.Currency, &p.Rate,
		&p.Divisa, &p.Bolivares, &p.RateType, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Description = desc.String

	return &p, nil
}

func (s *Store) CreateDebt(ctx context.Context, d *debt.Debt) error {
	query := `
		INSERT INTO deudas (persona_name, description, original_currency, total_divisa, tasa_cambio, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		d.PersonaName,
		d.Description,
		d.Currency,
		d.TotalDivisa,
		d.Rate,
		d.DueDate,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating debt: %w", err)
	}

	return nil
}

func (s *Store) GetDebt(ctx context.Context, id uuid.UUID) (*debt.Debt, error) {
	query := `SELECT ` + selectDebtColumns + ` FROM deudas WHERE id = $1`

	d, err := scanDebt(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, debt.ErrNotFound
		}

		return nil, fmt.Errorf("getting debt: %w", err)
	}

	return d, nil
}

func (s *Store) UpdateDebt(ctx context.Context, d *debt.Debt) error {
	query := `
		UPDATE deudas
		SET persona_name = $1, description = $2, due_date = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, d.PersonaName, d.Description, d.DueDate, d.ID).Scan(&d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return debt.ErrNotFound
		}

		return fmt.Errorf("updating debt: %w", err)
	}

	return nil
}

// DeleteDebt removes the debt and its payments in one transaction.
func (s *Store) DeleteDebt(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pagos WHERE deuda_id = $1`, id); err != nil {
		return fmt.Errorf("deleting payments: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM deudas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting debt: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return debt.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) ListDebts(ctx context.Context) ([]*debt.Debt, error) {
	query := `SELECT ` + selectDebtColumns + ` FROM deudas ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	defer rows.Close()

	var debts []*debt.Debt

	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning debt: %w", err)
		}

		debts = append(debts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating debts: %w", err)
	}

	return debts, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *debt.Payment) error {
	query := `
		INSERT INTO pagos (deuda_id, description, payment_date, original_currency, tasa_cambio, pago_divisa, pago_bolivares, tipo_tasa, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.DebtID,
		p.Description,
		p.PaymentDate,
		p.Currency,
		p.Rate,
		p.Divisa,
		p.Bolivares,
		p.RateType,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) ListPayments(ctx context.Context, filter debt.PaymentFilter) ([]*debt.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM pagos`

	var args []any

	if filter.DebtID != nil {
		query += ` WHERE deuda_id = $1`

		args = append(args, *filter.DebtID)
	}

	query += ` ORDER BY payment_date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*debt.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}

	return payments, nil
}
