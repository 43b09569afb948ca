package debt

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/debt"
	"github.com/MrJamesThe3rd/fletes/internal/http/render"
	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

type Handler struct {
	svc *debt.Service
}

func NewHandler(svc *debt.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/pagos", h.payments)
	r.Post("/{id}/pagos", h.recordPayment)
}

type createDebtRequest struct {
	PersonaName string           `json:"persona_name"`
	Description string           `json:"description"`
	Currency    money.Currency   `json:"original_currency"`
	TotalDivisa render.Amount    `json:"total_divisa"`
	Rate        *decimal.Decimal `json:"tasa_cambio"`
	DueDate     *render.Date     `json:"due_date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createDebtRequest
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	d, err := h.svc.CreateDebt(r.Context(), debt.CreateParams{
		PersonaName: req.PersonaName,
		Description: req.Description,
		Currency:    req.Currency,
		TotalDivisa: int64(req.TotalDivisa),
		Rate:        req.Rate,
		DueDate:     render.TimePtr(req.DueDate),
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusCreated, toBalanceResponse(&debt.Balance{
		Debt:      d,
		Remaining: d.TotalDivisa,
		Status:    debt.StatusPending,
	}))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	balances, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, listResponse{
		Items:   toBalanceResponseList(balances),
		Summary: toSummaryResponse(debt.Summarize(balances)),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, toBalanceResponse(b))
}

type updateDebtRequest struct {
	PersonaName *string      `json:"persona_name,omitempty"`
	Description *string      `json:"description,omitempty"`
	DueDate     *render.Date `json:"due_date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	var req updateDebtRequest
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	if _, err := h.svc.UpdateDebt(r.Context(), id, debt.UpdateParams{
		PersonaName: req.PersonaName,
		Description: req.Description,
		DueDate:     render.TimePtr(req.DueDate),
	}); err != nil {
		render.Error(w, r, err)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, toBalanceResponse(b))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	if err := h.svc.DeleteDebt(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}

func (h *Handler) payments(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	payments, err := h.svc.Payments(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, toPaymentResponseList(payments))
}

type paymentRequest struct {
	Description string               `json:"description"`
	PaymentDate render.Date          `json:"payment_date"`
	Type        validate.PaymentType `json:"payment_type"`
	Divisa      *render.Amount       `json:"pago_divisa"`
	Bolivares   *render.Amount       `json:"pago_bolivares"`
	Rate        *decimal.Decimal     `json:"tasa_cambio"`
	RateType    *money.RateType      `json:"tipo_tasa"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	var req paymentRequest
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	p, err := h.svc.RecordPayment(r.Context(), debt.PaymentParams{
		DebtID:      id,
		Description: req.Description,
		PaymentDate: req.PaymentDate.Time(),
		Type:        req.Type,
		Divisa:      render.Cents(req.Divisa),
		Bolivares:   render.Cents(req.Bolivares),
		Rate:        req.Rate,
		RateType:    req.RateType,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusCreated, toPaymentResponse(p))
}
