package matching

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fletes/internal/expense"
	"github.com/MrJamesThe3rd/fletes/internal/http/render"
	"github.com/MrJamesThe3rd/fletes/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type categoriesResponse struct {
	Categories []expense.Category `json:"categories"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, http.StatusOK, categoriesResponse{Categories: expense.Categories})
}

type suggestResponse struct {
	RawDescription string           `json:"raw_description"`
	Category       expense.Category `json:"category"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	rawDesc := r.URL.Query().Get("raw_description")
	if rawDesc == "" {
		render.BadRequest(w, r, "raw_description query parameter is required")
		return
	}

	category, err := h.svc.Suggest(r.Context(), rawDesc)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, suggestResponse{
		RawDescription: rawDesc,
		Category:       category,
	})
}

type learnRequest struct {
	RawPattern string           `json:"raw_pattern"`
	Category   expense.Category `json:"category"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	if err := h.svc.Learn(r.Context(), req.RawPattern, req.Category); err != nil {
		render.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
