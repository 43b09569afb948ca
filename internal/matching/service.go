package matching

import (
	"context"
	"strings"

	"github.com/MrJamesThe3rd/fletes/internal/expense"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, rawDescription string) (expense.Category, error)
	CreateRule(ctx context.Context, rawPattern string, category expense.Category) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category of the longest learned pattern contained in
// rawDescription, or "" when nothing matches.
func (s *Service) Suggest(ctx context.Context, rawDescription string) (expense.Category, error) {
	if strings.TrimSpace(rawDescription) == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, rawDescription)
}

// Learn maps rawPattern to category for future imports.
func (s *Service) Learn(ctx context.Context, rawPattern string, category expense.Category) error {
	var errs validate.Errors

	rawPattern = strings.TrimSpace(rawPattern)
	if rawPattern == "" {
		errs.Add("raw_pattern", validate.MsgRequired)
	}

	if !category.Valid() {
		errs.Add("category", "Categoría no válida")
	}

	if err := errs.OrNil(); err != nil {
		return err
	}

	return s.repo.CreateRule(ctx, rawPattern, category)
}

// Categorize fills the category of rows that have none: the suggestion when a
// rule matches, Otros otherwise.
func (s *Service) Categorize(ctx context.Context, rows []expense.CreateParams) error {
	for i := range rows {
		if rows[i].Category != "" {
			continue
		}

		c, err := s.Suggest(ctx, rows[i].RawDescription)
		if err != nil {
			return err
		}

		if c == "" {
			c = expense.CategoryOther
		}

		rows[i].Category = c
	}

	return nil
}
