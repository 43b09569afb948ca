package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/fletes/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindMatch returns the category of the longest pattern contained in
// rawDescription, or "" when no rule applies.
func (s *Store) FindMatch(ctx context.Context, rawDescription string) (expense.Category, error) {
	query := `
		SELECT category
		FROM category_rules
		WHERE $1 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category expense.Category

	err := s.db.QueryRowContext(ctx, query, rawDescription).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding category rule: %w", err)
	}

	return category, nil
}

// CreateRule stores the rule, replacing the category of an existing rule
// with the same pattern. raw_pattern is unique in category_rules.
func (s *Store) CreateRule(ctx context.Context, rawPattern string, category expense.Category) error {
	query := `
		INSERT INTO category_rules (raw_pattern, category, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (raw_pattern)
		DO UPDATE SET category = EXCLUDED.category, created_at = EXCLUDED.created_at
	`

	if _, err := s.db.ExecContext(ctx, query, rawPattern, category); err != nil {
		return fmt.Errorf("creating category rule: %w", err)
	}

	return nil
}
