package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/rates"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveSnapshot writes one exchange_rates row per rate type of the snapshot.
func (s *Store) SaveSnapshot(ctx context.Context, snap rates.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO exchange_rates (rate_type, price, last_update, fetched_at)
		VALUES ($1, $2, $3, $4)
	`

	for _, q := range []rates.Quote{snap.BCV, snap.Parallel, snap.Average} {
		if _, err := tx.ExecContext(ctx, query, q.Type, q.Price, q.LastUpdate, snap.FetchedAt); err != nil {
			return fmt.Errorf("saving %s rate: %w", q.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// LatestSnapshot rebuilds the most recently fetched snapshot.
func (s *Store) LatestSnapshot(ctx context.Context) (*rates.Snapshot, error) {
	query := `
		SELECT rate_type, price, last_update, fetched_at
		FROM exchange_rates
		WHERE fetched_at = (SELECT MAX(fetched_at) FROM exchange_rates)
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading latest rates: %w", err)
	}
	defer rows.Close()

	var (
		snap  rates.Snapshot
		found bool
	)

	for rows.Next() {
		var q rates.Quote

		if err := rows.Scan(&q.Type, &q.Price, &q.LastUpdate, &snap.FetchedAt); err != nil {
			return nil, fmt.Errorf("scanning rate: %w", err)
		}

		switch q.Type {
		case money.RateBCV:
			snap.BCV = q
		case money.RateParallel:
			snap.Parallel = q
		case money.RateAverage:
			snap.Average = q
		}

		found = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rates: %w", err)
	}

	if !found {
		return nil, errors.New("no persisted rates")
	}

	return &snap, nil
}
