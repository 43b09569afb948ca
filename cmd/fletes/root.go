package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/fletes/internal/config"
	"github.com/MrJamesThe3rd/fletes/internal/database"
	"github.com/MrJamesThe3rd/fletes/internal/debt"
	debtStore "github.com/MrJamesThe3rd/fletes/internal/debt/store"
	"github.com/MrJamesThe3rd/fletes/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/fletes/internal/expense/store"
	"github.com/MrJamesThe3rd/fletes/internal/importer"
	"github.com/MrJamesThe3rd/fletes/internal/logger"
	"github.com/MrJamesThe3rd/fletes/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/fletes/internal/matching/store"
	"github.com/MrJamesThe3rd/fletes/internal/rates"
	ratesStore "github.com/MrJamesThe3rd/fletes/internal/rates/store"
	"github.com/MrJamesThe3rd/fletes/internal/report"
)

var version = "0.1.0"

// env holds what the subcommands share. It is filled by the root command's
// PersistentPreRunE and the database is opened only by commands that need it.
type env struct {
	cfg *config.Config
	log zerolog.Logger
	db  *sql.DB
}

var app env

var rootCmd = &cobra.Command{
	Use:   "fletes",
	Short: "Back-office tools for fletes, gastos and deudas",
	Long: `fletes is the administrative CLI of the freight back office.

It reads the same environment as the API (DB_*, RATES_*, LOG_*), so it can
fetch exchange rates, import expense spreadsheets, print debt statements
and export expenses without going through HTTP.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Debug().Err(err).Msg("no .env file loaded")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		lc := cfg.LoggerConfig()
		if lc.Output == "stdout" {
			// stdout carries command output such as CSV.
			lc.Output = "stderr"
		}

		l, err := logger.New(lc)
		if err != nil {
			return err
		}

		app.cfg = cfg
		app.log = l

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app.db != nil {
			app.db.Close()
			app.db = nil
		}
	},
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.WithComponent("cmd").Error().Err(err).Msg("command failed")
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)

		return 1
	}

	return 0
}

func (e *env) openDB(ctx context.Context) (*sql.DB, error) {
	if e.db != nil {
		return e.db, nil
	}

	db, err := database.New(ctx, e.cfg.ConnectionString(), e.cfg.Server.Timeout)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	e.db = db

	return db, nil
}

func (e *env) ratesService(db *sql.DB) *rates.Service {
	client := rates.NewClient(e.cfg.Rates.URL, e.cfg.Rates.Timeout, e.log)

	var repo rates.Repository
	if db != nil {
		repo = ratesStore.New(db)
	}

	return rates.NewService(client, repo, e.cfg.Rates.TTL, e.log)
}

func (e *env) debtService(db *sql.DB) *debt.Service {
	return debt.NewService(debtStore.New(db))
}

func (e *env) expenseService(db *sql.DB) *expense.Service {
	return expense.NewService(expenseStore.New(db))
}

func (e *env) importService(db *sql.DB) *importer.Service {
	return importer.NewService(e.ratesService(db), matching.NewService(matchingStore.New(db)), e.log)
}

func (e *env) reportService(db *sql.DB) *report.Service {
	return report.NewService(e.expenseService(db), e.debtService(db))
}
