package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fletes/internal/flete"
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

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectFleteColumns = `
	id, fo_number, driver_id, cliente_id, vehicle_id, status, destination, costo_aproximado,
	pago_fecha, monto_pagado_origen, moneda_origen, tasa_cambio, monto_pagado_usd, monto_pagado_ves,
	monto_pago_chofer, pagado_chofer, fecha_pago_chofer, pago_moneda_chofer, pago_tasa_cambio_chofer,
	monto_pago_ayudante, pagado_ayudante, fecha_pago_ayudante, pago_moneda_ayudante, pago_tasa_cambio_ayudante,
	created_at, updated_at
`

func scanFlete(s scanner) (*flete.Flete, error) {
	var f flete.Flete

	if err := s.Scan(
		&f.ID, &f.FONumber, &f.DriverID, &f.ClientID, &f.VehicleID, &f.Status, &f.Destination, &f.EstimatedCost,
		&f.PaidAt, &f.AmountPaid, &f.Currency, &f.Rate, &f.AmountPaidUSD, &f.AmountPaidVES,
		&f.Driver.Amount, &f.Driver.Paid, &f.Driver.PaidAt, &f.Driver.Currency, &f.Driver.Rate,
		&f.Helper.Amount, &f.Helper.Paid, &f.Helper.PaidAt, &f.Helper.Currency, &f.Helper.Rate,
		&f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &f, nil
}

const selectFacturaColumns = `
	id, flete_id, invoice_number, client_name, load_date, delivery_date, state_dest, city_dest,
	weight_kg, observation, driver_id, created_at, updated_at
`

func scanFactura(s scanner) (*flete.Factura, error) {
	var fa flete.Factura

	var stateDest, cityDest, observation sql.NullString

	if err := s.Scan(
		&fa.ID, &fa.FleteID, &fa.InvoiceNumber, &fa.ClientName, &fa.LoadDate, &fa.DeliveryDate, &stateDest, &cityDest,
		&fa.WeightKg, &observation, &fa.DriverID, &fa.CreatedAt, &fa.UpdatedAt,
	); err != nil {
		return nil, err
	}

	fa.StateDest = stateDest.String
	fa.CityDest = cityDest.String
	fa.Observation = observation.String

	return &fa, nil
}

// headerArgs returns the writable flete columns in selectFleteColumns order, without id and timestamps.
func headerArgs(f *flete.Flete) []any {
	return []any{
		f.FONumber, f.DriverID, f.ClientID, f.VehicleID, f.Status, f.Destination, f.EstimatedCost,
		f.PaidAt, f.AmountPaid, f.Currency, f.Rate, f.AmountPaidUSD, f.AmountPaidVES,
		f.Driver.Amount, f.Driver.Paid, f.Driver.PaidAt, f.Driver.Currency, f.Driver.Rate,
		f.Helper.Amount, f.Helper.Paid, f.Helper.PaidAt, f.Helper.Currency, f.Helper.Rate,
	}
}

// CreateFlete inserts the flete and its facturas in one transaction.
func (s *Store) CreateFlete(ctx context.Context, f *flete.Flete) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO fletes (
			fo_number, driver_id, cliente_id, vehicle_id, status, destination, costo_aproximado,
			pago_fecha, monto_pagado_origen, moneda_origen, tasa_cambio, monto_pagado_usd, monto_pagado_ves,
			monto_pago_chofer, pagado_chofer, fecha_pago_chofer, pago_moneda_chofer, pago_tasa_cambio_chofer,
			monto_pago_ayudante, pagado_ayudante, fecha_pago_ayudante, pago_moneda_ayudante, pago_tasa_cambio_ayudante,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	if err := tx.QueryRowContext(ctx, query, headerArgs(f)...).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return fmt.Errorf("creating flete: %w", err)
	}

	if err := insertFacturas(ctx, tx, f); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func insertFacturas(ctx context.Context, db execer, f *flete.Flete) error {
	for _, fa := range f.Facturas {
		fa.FleteID = f.ID

		if err := insertFactura(ctx, db, fa); err != nil {
			return err
		}
	}

	return nil
}

func insertFactura(ctx context.Context, db execer, fa *flete.Factura) error {
	query := `
		INSERT INTO facturas (
			flete_id, invoice_number, client_name, load_date, delivery_date, state_dest, city_dest,
			weight_kg, observation, driver_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := db.QueryRowContext(ctx, query,
		fa.FleteID,
		fa.InvoiceNumber,
		fa.ClientName,
		fa.LoadDate,
		fa.DeliveryDate,
		fa.StateDest,
		fa.CityDest,
		fa.WeightKg,
		fa.Observation,
		fa.DriverID,
	).Scan(&fa.ID, &fa.CreatedAt, &fa.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating factura: %w", err)
	}

	return nil
}

func (s *Store) GetFlete(ctx context.Context, id uuid.UUID) (*flete.Flete, error) {
	query := `SELECT ` + selectFleteColumns + ` FROM fletes WHERE id = $1`

	f, err := scanFlete(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, flete.ErrNotFound
		}

		return nil, fmt.Errorf("getting flete: %w", err)
	}

	facturas, err := s.listFacturas(ctx, id)
	if err != nil {
		return nil, err
	}

	f.Facturas = facturas

	return f, nil
}

func (s *Store) listFacturas(ctx context.Context, fleteID uuid.UUID) ([]*flete.Factura, error) {
	query := `SELECT ` + selectFacturaColumns + ` FROM facturas WHERE flete_id = $1 ORDER BY load_date ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, fleteID)
	if err != nil {
		return nil, fmt.Errorf("listing facturas: %w", err)
	}
	defer rows.Close()

	var facturas []*flete.Factura

	for rows.Next() {
		fa, err := scanFactura(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning factura: %w", err)
		}

		facturas = append(facturas, fa)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating facturas: %w", err)
	}

	return facturas, nil
}

// ListFletes returns one page of fletes, newest first, and the total number of matching rows.
func (s *Store) ListFletes(ctx context.Context, filter flete.ListFilter) ([]*flete.Flete, int, error) {
	var (
		where []string
		args  []any
	)

	argIdx := 1

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))

		for i, st := range filter.Statuses {
			placeholders[i] = fmt.Sprintf("$%d", argIdx)

			args = append(args, st)
			argIdx++
		}

		where = append(where, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if filter.DriverID != nil {
		where = append(where, fmt.Sprintf("driver_id = $%d", argIdx))

		args = append(args, *filter.DriverID)
		argIdx++
	}

	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(fo_number ILIKE $%d OR destination ILIKE $%d)", argIdx, argIdx))

		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fletes`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting fletes: %w", err)
	}

	query := `SELECT ` + selectFleteColumns + ` FROM fletes` + cond +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)

	args = append(args, filter.Page.Limit(), filter.Page.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing fletes: %w", err)
	}
	defer rows.Close()

	var fletes []*flete.Flete

	for rows.Next() {
		f, err := scanFlete(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning flete: %w", err)
		}

		fletes = append(fletes, f)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating fletes: %w", err)
	}

	return fletes, total, nil
}

// UpdateFlete writes the header and personnel columns. Facturas are left as they are.
func (s *Store) UpdateFlete(ctx context.Context, f *flete.Flete) error {
	return updateHeader(ctx, s.db, f)
}

func updateHeader(ctx context.Context, db execer, f *flete.Flete) error {
	query := `
		UPDATE fletes
		SET fo_number = $1, driver_id = $2, cliente_id = $3, vehicle_id = $4, status = $5, destination = $6,
			costo_aproximado = $7, pago_fecha = $8, monto_pagado_origen = $9, moneda_origen = $10,
			tasa_cambio = $11, monto_pagado_usd = $12, monto_pagado_ves = $13,
			monto_pago_chofer = $14, pagado_chofer = $15, fecha_pago_chofer = $16, pago_moneda_chofer = $17,
			pago_tasa_cambio_chofer = $18, monto_pago_ayudante = $19, pagado_ayudante = $20,
			fecha_pago_ayudante = $21, pago_moneda_ayudante = $22, pago_tasa_cambio_ayudante = $23,
			updated_at = NOW()
		WHERE id = $24
		RETURNING updated_at
	`

	args := append(headerArgs(f), f.ID)

	if err := db.QueryRowContext(ctx, query, args...).Scan(&f.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return flete.ErrNotFound
		}

		return fmt.Errorf("updating flete: %w", err)
	}

	return nil
}

// ReplaceFlete writes the header and swaps the facturas for f.Facturas in one transaction.
func (s *Store) ReplaceFlete(ctx context.Context, f *flete.Flete) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := updateHeader(ctx, tx, f); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM facturas WHERE flete_id = $1`, f.ID); err != nil {
		return fmt.Errorf("deleting facturas: %w", err)
	}

	if err := insertFacturas(ctx, tx, f); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteFlete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM facturas WHERE flete_id = $1`, id); err != nil {
		return fmt.Errorf("deleting facturas: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM fletes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting flete: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return flete.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) CreateFactura(ctx context.Context, fa *flete.Factura) error {
	return insertFactura(ctx, s.db, fa)
}

func (s *Store) UpdateFactura(ctx context.Context, fa *flete.Factura) error {
	query := `
		UPDATE facturas
		SET invoice_number = $1, client_name = $2, load_date = $3, delivery_date = $4, state_dest = $5,
			city_dest = $6, weight_kg = $7, observation = $8, driver_id = $9, updated_at = NOW()
		WHERE id = $10 AND flete_id = $11
		RETURNING created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		fa.InvoiceNumber,
		fa.ClientName,
		fa.LoadDate,
		fa.DeliveryDate,
		fa.StateDest,
		fa.CityDest,
		fa.WeightKg,
		fa.Observation,
		fa.DriverID,
		fa.ID,
		fa.FleteID,
	).Scan(&fa.CreatedAt, &fa.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return flete.ErrFacturaNotFound
		}

		return fmt.Errorf("updating factura: %w", err)
	}

	return nil
}

func (s *Store) DeleteFactura(ctx context.Context, fleteID, facturaID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM facturas WHERE id = $1 AND flete_id = $2`, facturaID, fleteID)
	if err != nil {
		return fmt.Errorf("deleting factura: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return flete.ErrFacturaNotFound
	}

	return nil
}
