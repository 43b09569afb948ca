package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/MrJamesThe3rd/fletes/internal/config"
	"github.com/MrJamesThe3rd/fletes/internal/database"
	"github.com/MrJamesThe3rd/fletes/internal/debt"
	debtStore "github.com/MrJamesThe3rd/fletes/internal/debt/store"
	"github.com/MrJamesThe3rd/fletes/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/fletes/internal/expense/store"
	"github.com/MrJamesThe3rd/fletes/internal/flete"
	fleteStore "github.com/MrJamesThe3rd/fletes/internal/flete/store"
	fletesHttp "github.com/MrJamesThe3rd/fletes/internal/http"
	debtHandler "github.com/MrJamesThe3rd/fletes/internal/http/debt"
	expenseHandler "github.com/MrJamesThe3rd/fletes/internal/http/expense"
	exportHandler "github.com/MrJamesThe3rd/fletes/internal/http/export"
	fleteHandler "github.com/MrJamesThe3rd/fletes/internal/http/flete"
	importHandler "github.com/MrJamesThe3rd/fletes/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/fletes/internal/http/matching"
	ratesHandler "github.com/MrJamesThe3rd/fletes/internal/http/rates"
	vehicleHandler "github.com/MrJamesThe3rd/fletes/internal/http/vehicle"
	"github.com/MrJamesThe3rd/fletes/internal/importer"
	"github.com/MrJamesThe3rd/fletes/internal/logger"
	"github.com/MrJamesThe3rd/fletes/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/fletes/internal/matching/store"
	"github.com/MrJamesThe3rd/fletes/internal/rates"
	ratesStore "github.com/MrJamesThe3rd/fletes/internal/rates/store"
	"github.com/MrJamesThe3rd/fletes/internal/report"
	"github.com/MrJamesThe3rd/fletes/internal/scheduler"
	"github.com/MrJamesThe3rd/fletes/internal/vehicle"
	vehicleStore "github.com/MrJamesThe3rd/fletes/internal/vehicle/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("api stopped")
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	l, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString(), cfg.Server.Timeout)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	var (
		debtService     = debt.NewService(debtStore.New(db))
		fleteService    = flete.NewService(fleteStore.New(db))
		expenseService  = expense.NewService(expenseStore.New(db))
		vehicleService  = vehicle.NewService(vehicleStore.New(db))
		matchingService = matching.NewService(matchingStore.New(db))
		ratesService    = rates.NewService(rates.NewClient(cfg.Rates.URL, cfg.Rates.Timeout, l), ratesStore.New(db), cfg.Rates.TTL, l)
		importService   = importer.NewService(ratesService, matchingService, l)
		reportService   = report.NewService(expenseService, debtService)
	)

	router := fletesHttp.New(fletesHttp.Handlers{
		Debts:      debtHandler.NewHandler(debtService),
		Fletes:     fleteHandler.NewHandler(fleteService),
		Expenses:   expenseHandler.NewHandler(expenseService),
		Vehicles:   vehicleHandler.NewHandler(vehicleService),
		Rates:      ratesHandler.NewHandler(ratesService),
		Import:     importHandler.NewHandler(importService, expenseService),
		Categories: matchingHandler.NewHandler(matchingService),
		Export:     exportHandler.NewHandler(reportService),
	}, cfg.CORS.AllowedOrigins, l)

	sched := scheduler.New(l)

	refresh := rates.NewRefreshJob(ratesService, cfg.Rates.Timeout)
	if err := sched.AddJob(cfg.Rates.Schedule, refresh); err != nil {
		return err
	}

	if err := sched.RunNow(refresh); err != nil {
		l.Warn().Err(err).Msg("initial rate refresh failed")
	}

	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		l.Info().Str("app", cfg.App.Name).Str("addr", srv.Addr).Msg("starting server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving http: %w", err)
		}
	case <-ctx.Done():
	}

	l.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	return nil
}
