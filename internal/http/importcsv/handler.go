package importcsv

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fletes/internal/expense"
	expensehttp "github.com/MrJamesThe3rd/fletes/internal/http/expense"
	"github.com/MrJamesThe3rd/fletes/internal/http/render"
	"github.com/MrJamesThe3rd/fletes/internal/importer"
	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc  *importer.Service
	expenseSvc *expense.Service
}

func NewHandler(importSvc *importer.Service, expenseSvc *expense.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		expenseSvc: expenseSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importFile)
	r.Post("/confirm", h.confirmImport)
}

type importSuccessResponse struct {
	Imported int                    `json:"imported"`
	Format   importer.Format        `json:"format,omitempty"`
	Expenses []expensehttp.Response `json:"expenses"`
}

type conflictDTO struct {
	Incoming expensehttp.Params   `json:"incoming"`
	Existing expensehttp.Response `json:"existing"`
}

type importConflictResponse struct {
	New       []expensehttp.Params `json:"new"`
	Conflicts []conflictDTO        `json:"conflicts"`
}

type confirmRequest struct {
	Params []expensehttp.Params `json:"params"`
}

// importFile takes a multipart form with the file plus optional format,
// tipo_tasa and tasa_cambio fields. Rows that already exist are returned
// with 409 and nothing is stored.
func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		render.BadRequest(w, r, "failed to parse form: "+err.Error())
		return
	}

	req, err := importRequest(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		render.BadRequest(w, r, "file field is required")
		return
	}
	defer file.Close()

	parsed, err := h.importSvc.Import(r.Context(), req, file)
	if err != nil {
		var perr *importer.ParseError
		if errors.As(err, &perr) {
			render.BadRequest(w, r, perr.Error())
			return
		}

		render.Error(w, r, err)

		return
	}

	result, err := h.expenseSvc.ImportBatch(r.Context(), parsed.Rows)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]expensehttp.Params, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}
		for _, p := range result.New {
			resp.New = append(resp.New, expensehttp.FromCreateParams(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: expensehttp.FromCreateParams(c.Incoming),
				Existing: expensehttp.ToResponse(c.Existing),
			})
		}

		render.JSON(w, r, http.StatusConflict, resp)

		return
	}

	render.JSON(w, r, http.StatusCreated, importSuccessResponse{
		Imported: len(result.Imported),
		Format:   parsed.Format,
		Expenses: expensehttp.ToResponseList(result.Imported),
	})
}

func importRequest(r *http.Request) (importer.Request, error) {
	req := importer.Request{Format: importer.Format(r.FormValue("format"))}

	var errs validate.Errors

	if s := r.FormValue("tipo_tasa"); s != "" {
		t, err := money.ParseRateType(s)
		if err != nil {
			errs.Add(validate.FieldRateType, validate.MsgRateTypeInvalid)
		}

		req.RateType = t
	}

	if s := r.FormValue("tasa_cambio"); s != "" {
		d, err := money.ParseDecimal(s)
		if err != nil {
			errs.Add(validate.FieldRate, validate.MsgRatePositive)
		}

		req.CustomRate = new(d)
	}

	if req.CustomRate != nil && req.RateType == "" {
		req.RateType = money.RateCustom
	}

	return req, errs.OrNil()
}

// confirmImport stores the rows the client kept after reviewing conflicts.
func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := render.Decode(r, &req); err != nil {
		render.DecodeError(w, r, err)
		return
	}

	params := make([]expense.CreateParams, 0, len(req.Params))
	for _, p := range req.Params {
		params = append(params, p.ToCreateParams())
	}

	expenses, err := h.expenseSvc.CreateBatch(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusCreated, importSuccessResponse{
		Imported: len(expenses),
		Expenses: expensehttp.ToResponseList(expenses),
	})
}
