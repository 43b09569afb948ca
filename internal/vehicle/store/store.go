package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fletes/internal/vehicle"
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

const selectVehicleColumns = `id, name, brand, model, color, plate, created_at, updated_at`

func scanVehicle(s scanner) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle

	if err := s.Scan(&v.ID, &v.Name, &v.Brand, &v.Model, &v.Color, &v.Plate, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}

	return &v, nil
}

func (s *Store) CreateVehicle(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		INSERT INTO vehicles (name, brand, model, color, plate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, v.Name, v.Brand, v.Model, v.Color, v.Plate).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating vehicle: %w", err)
	}

	return nil
}

func (s *Store) GetVehicle(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	query := `SELECT ` + selectVehicleColumns + ` FROM vehicles WHERE id = $1`

	v, err := scanVehicle(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vehicle.ErrNotFound
		}

		return nil, fmt.Errorf("getting vehicle: %w", err)
	}

	return v, nil
}

func (s *Store) UpdateVehicle(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $1, brand = $2, model = $3, color = $4, plate = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, v.Name, v.Brand, v.Model, v.Color, v.Plate, v.ID).Scan(&v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vehicle.ErrNotFound
		}

		return fmt.Errorf("updating vehicle: %w", err)
	}

	return nil
}

func (s *Store) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting vehicle: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return vehicle.ErrNotFound
	}

	return nil
}

func (s *Store) ListVehicles(ctx context.Context, filter vehicle.ListFilter) ([]*vehicle.Vehicle, int, error) {
	cond := ""

	var args []any

	if filter.Search != "" {
		cond = ` WHERE name ILIKE $1 OR plate ILIKE $1`

		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting vehicles: %w", err)
	}

	query := `SELECT ` + selectVehicleColumns + ` FROM vehicles` + cond +
		fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	args = append(args, filter.Page.Limit(), filter.Page.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*vehicle.Vehicle

	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning vehicle: %w", err)
		}

		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating vehicles: %w", err)
	}

	return vehicles, total, nil
}
