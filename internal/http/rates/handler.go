package rates

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/http/render"
	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/rates"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

type Handler struct {
	svc *rates.Service
}

func NewHandler(svc *rates.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.current)
	r.Post("/refresh", h.refresh)
	r.Get("/resolve", h.resolve)
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Current(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, snap)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Refresh(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, snap)
}

type resolveResponse struct {
	RateType money.RateType  `json:"tipo_tasa"`
	Rate     decimal.Decimal `json:"tasa_cambio"`
}

// resolve answers the rate a form should apply for ?tipo_tasa=, with
// ?tasa_cambio= carrying the value of a custom rate.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	t, err := money.ParseRateType(r.URL.Query().Get("tipo_tasa"))
	if err != nil {
		render.Error(w, r, validate.Errors{{Field: validate.FieldRateType, Message: validate.MsgRateTypeInvalid}})
		return
	}

	var custom *decimal.Decimal

	if s := r.URL.Query().Get("tasa_cambio"); s != "" {
		d, err := money.ParseDecimal(s)
		if err != nil {
			render.Error(w, r, validate.Errors{{Field: validate.FieldRate, Message: validate.MsgRatePositive}})
			return
		}

		custom = &d
	}

	rate, err := h.svc.Resolve(r.Context(), t, custom)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, resolveResponse{RateType: t, Rate: rate})
}
