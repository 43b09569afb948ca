package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/fletes/internal/http/debt"
	"github.com/MrJamesThe3rd/fletes/internal/http/expense"
	"github.com/MrJamesThe3rd/fletes/internal/http/export"
	"github.com/MrJamesThe3rd/fletes/internal/http/flete"
	"github.com/MrJamesThe3rd/fletes/internal/http/importcsv"
	"github.com/MrJamesThe3rd/fletes/internal/http/matching"
	"github.com/MrJamesThe3rd/fletes/internal/http/rates"
	"github.com/MrJamesThe3rd/fletes/internal/http/render"
	"github.com/MrJamesThe3rd/fletes/internal/http/vehicle"
)

type Handlers struct {
	Debts      *debt.Handler
	Fletes     *flete.Handler
	Expenses   *expense.Handler
	Vehicles   *vehicle.Handler
	Rates      *rates.Handler
	Import     *importcsv.Handler
	Categories *matching.Handler
	Export     *export.Handler
}

func New(h Handlers, allowedOrigins []string, log zerolog.Logger) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(log))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/deudas", func(r chi.Router) {
			r.Get("/resumen", h.Export.DebtSummary)
			r.Get("/{id}/estado", h.Export.DebtStatement)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Debts.Routes(r)
			})
		})

		r.Route("/fletes", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Fletes.Routes(r)
		})

		r.Route("/gastos", func(r chi.Router) {
			r.Get("/export", h.Export.ExpensesCSV)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Expenses.Routes(r)
			})
		})

		r.Route("/vehiculos", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Vehicles.Routes(r)
		})

		r.Route("/tasas", h.Rates.Routes)
		r.Route("/import", h.Import.Routes)
		r.Route("/categorias", h.Categories.Routes)
	})

	return router
}
