package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/expense"
	"github.com/MrJamesThe3rd/fletes/internal/importer/sheet"
	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer

type RateResolver interface {
	Resolve(ctx context.Context, t money.RateType, custom *decimal.Decimal) (decimal.Decimal, error)
}

type Categorizer interface {
	Categorize(ctx context.Context, rows []expense.CreateParams) error
}

// Request selects the file layout and the rate applied to rows that carry none.
type Request struct {
	Format     Format
	RateType   money.RateType
	CustomRate *decimal.Decimal
}

type Result struct {
	Format  Format
	Charset string
	Rows    []expense.CreateParams
}

type Service struct {
	parser     Parser
	rates      RateResolver
	categories Categorizer
	log        zerolog.Logger
}

func NewService(rates RateResolver, categories Categorizer, log zerolog.Logger) *Service {
	return &Service{
		parser:     sheet.NewParser(),
		rates:      rates,
		categories: categories,
		log:        log.With().Str("component", "importer").Logger(),
	}
}

// Import parses r into expense rows ready for expense.Service.ImportBatch.
// Rows without a rate get the one named by req; rows without a category get
// the learned suggestion.
func (s *Service) Import(ctx context.Context, req Request, r io.Reader) (*Result, error) {
	if !req.Format.Valid() {
		return nil, validate.Errors{{Field: "format", Message: fmt.Sprintf("must be one of %v", sheet.Formats())}}
	}

	if req.RateType == "" {
		req.RateType = money.RateBCV
	}

	parsed, err := s.parser.Parse(r, string(req.Format))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	if err := s.fillRates(ctx, req, parsed.Rows); err != nil {
		return nil, err
	}

	if err := s.categories.Categorize(ctx, parsed.Rows); err != nil {
		return nil, fmt.Errorf("categorizing rows: %w", err)
	}

	s.log.Info().
		Str("format", parsed.Format).
		Str("charset", parsed.Charset).
		Int("rows", len(parsed.Rows)).
		Msg("file parsed")

	return &Result{
		Format:  Format(parsed.Format),
		Charset: parsed.Charset,
		Rows:    parsed.Rows,
	}, nil
}

// fillRates resolves the request rate at most once, and only if a row needs
// it. Bolívar rows cannot be saved without a rate; divisa rows only use it to
// derive the bolívar amount, so a failed lookup leaves them without one.
func (s *Service) fillRates(ctx context.Context, req Request, rows []expense.CreateParams) error {
	var needVES, needUSD int

	for i := range rows {
		if rows[i].Rate != nil {
			continue
		}

		if rows[i].Currency == money.VES {
			needVES++
		} else {
			needUSD++
		}
	}

	if needVES+needUSD == 0 {
		return nil
	}

	rate, err := s.rates.Resolve(ctx, req.RateType, req.CustomRate)
	if err != nil {
		if needVES > 0 {
			return fmt.Errorf("resolving %s rate: %w", req.RateType, err)
		}

		s.log.Warn().Err(err).
			Str("rate_type", string(req.RateType)).
			Int("rows", needUSD).
			Msg("rate unavailable, divisa rows imported without bolívares")

		return nil
	}

	for i := range rows {
		if rows[i].Rate != nil {
			continue
		}

		rows[i].Rate = new(rate)
		rows[i].RateType = new(req.RateType)
	}

	return nil
}
