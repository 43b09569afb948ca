package expense

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fletes/internal/expense"
	"github.com/MrJamesThe3rd/fletes/internal/http/render"
	"github.com/MrJamesThe3rd/fletes/internal/page"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/totales", h.totals)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req Params
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	e, err := h.svc.Create(r.Context(), req.ToCreateParams())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusCreated, ToResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	res, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, page.Result[Response]{
		Items:   ToResponseList(res.Items),
		Total:   res.Total,
		Page:    res.Page,
		PerPage: res.PerPage,
	})
}

func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	g := expense.Granularity(r.URL.Query().Get("granularity"))
	if g == "" {
		g = expense.GranularityMonth
	}

	totals, err := h.svc.Totals(r.Context(), filter, g)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]totalResponse, len(totals))
	for i, t := range totals {
		resp[i] = totalResponse{
			Period:    render.Date(t.Period),
			Divisa:    render.Amount(t.Divisa),
			Bolivares: render.Amount(t.Bolivares),
		}
	}

	render.JSON(w, r, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, ToResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	var req Params
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	e, err := h.svc.Update(r.Context(), id, req.ToCreateParams())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, ToResponse(e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}
