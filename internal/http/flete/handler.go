package flete

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fletes/internal/flete"
	"github.com/MrJamesThe3rd/fletes/internal/http/render"
)

type Handler struct {
	svc *flete.Service
}

func NewHandler(svc *flete.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/status", h.changeStatus)
	r.Post("/{id}/personal/{role}", h.payPersonnel)
	r.Post("/{id}/facturas", h.addFactura)
	r.Put("/{id}/facturas/{facturaID}", h.updateFactura)
	r.Delete("/{id}/facturas/{facturaID}", h.deleteFactura)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req fleteRequest
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	f, err := h.svc.Create(r.Context(), req.toParams())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusCreated, toResponse(f))
}

// list accepts ?status= repeated or comma separated, ?driver_id=, ?q= and paging.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := flete.ListFilter{
		Search: r.URL.Query().Get("q"),
		Page:   render.PageRequest(r),
	}

	for _, v := range r.URL.Query()["status"] {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Statuses = append(filter.Statuses, flete.Status(s))
			}
		}
	}

	driverID, err := render.UUIDParam(r, "driver_id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	filter.DriverID = driverID

	res, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, toPageResponse(res))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	f, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, toResponse(f))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	var req fleteRequest
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	f, err := h.svc.Update(r.Context(), id, req.toParams())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, toResponse(f))
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

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	var req statusRequest
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	f, err := h.svc.ChangeStatus(r.Context(), id, req.Status, req.toPayment())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, toResponse(f))
}

func (h *Handler) payPersonnel(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	var req personnelPaymentRequest
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	role := flete.Role(chi.URLParam(r, "role"))

	f, err := h.svc.PayPersonnel(r.Context(), id, role, req.toPayment())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, toResponse(f))
}

func (h *Handler) addFactura(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	var req facturaRequest
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	fa, err := h.svc.AddFactura(r.Context(), id, req.toParams())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusCreated, toFacturaResponse(fa))
}

func (h *Handler) updateFactura(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	facturaID, err := render.URLID(r, "facturaID")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	var req facturaRequest
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	fa, err := h.svc.UpdateFactura(r.Context(), id, facturaID, req.toParams())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, toFacturaResponse(fa))
}

func (h *Handler) deleteFactura(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r, "id")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	facturaID, err := render.URLID(r, "facturaID")
	if err != nil {
		render.BadRequest(w, r, err.Error())
		return
	}

	if err := h.svc.DeleteFactura(r.Context(), id, facturaID); err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}
