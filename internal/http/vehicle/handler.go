package vehicle

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fletes/internal/http/render"
	"github.com/MrJamesThe3rd/fletes/internal/page"
	"github.com/MrJamesThe3rd/fletes/internal/vehicle"
)

type Handler struct {
	svc *vehicle.Service
}

func NewHandler(svc *vehicle.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type vehicleResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Brand     string     `json:"brand"`
	Model     string     `json:"model"`
	Color     string     `json:"color"`
	Plate     string     `json:"plate"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(v *vehicle.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:        v.ID,
		Name:      v.Name,
		Brand:     v.Brand,
		Model:     v.Model,
		Color:     v.Color,
		Plate:     v.Plate,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req vehicle.Params
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	v, err := h.svc.Create(r.Context(), req)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusCreated, toResponse(v))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.List(r.Context(), vehicle.ListFilter{
		Search: r.URL.Query().Get("q"),
		Page:   render.PageRequest(r),
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	items := make([]vehicleResponse, len(res.Items))
	for i, v := range res.Items {
		items[i] = toResponse(v)
	}

	render.JSON(w, r, http.StatusOK, page.Result[vehicleResponse]{
		Items:   items,
		Total:   res.Total,
		Page:    res.Page,
		PerPage: res.PerPage,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	v, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, toResponse(v))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	var req vehicle.Params
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	v, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, toResponse(v))
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
