package export

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	expensehttp "github.com/MrJamesThe3rd/fletes/internal/http/expense"
	"github.com/MrJamesThe3rd/fletes/internal/http/render"
	"github.com/MrJamesThe3rd/fletes/internal/report"
)

// Handler serves the downloadable and printable reports. Its endpoints live
// under the resources they describe, so the router mounts each one directly.
type Handler struct {
	svc *report.Service
	now func() time.Time
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

// ExpensesCSV answers GET /gastos/export with the same filters as the expense list.
func (h *Handler) ExpensesCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := expensehttp.ParseFilter(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var buf bytes.Buffer

	n, err := h.svc.ExpensesCSV(r.Context(), filter, &buf)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"gastos_%s.csv\"", h.now().Format("20060102")))

	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("rows", n).Msg("failed to write csv")
	}
}

// DebtStatement answers GET /deudas/{id}/estado.
func (h *Handler) DebtStatement(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	statement, err := h.svc.DebtStatement(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Text(w, r, http.StatusOK, statement)
}

// DebtSummary answers GET /deudas/resumen.
func (h *Handler) DebtSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.Text(w, r, http.StatusOK, summary)
}
