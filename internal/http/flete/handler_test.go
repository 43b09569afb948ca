package flete

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fletes/internal/flete"
	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

func newRouter(repo flete.Repository) http.Handler {
	r := chi.NewRouter()
	NewHandler(flete.NewService(repo)).Routes(r)

	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func inTransit(id uuid.UUID) *flete.Flete {
	return &flete.Flete{
		ID:          id,
		FONumber:    "FO-1001",
		ClientID:    uuid.New(),
		Status:      flete.StatusInTransit,
		Destination: "Valencia",
		Currency:    money.USD,
		Driver:      flete.Personnel{Amount: new(int64(8000)), Currency: money.USD},
		Helper:      flete.Personnel{Currency: money.USD},
	}
}

func TestHandler_Create(t *testing.T) {
	clientID := uuid.New()

	type testCase struct {
		name       string
		body       string
		setupMock  func(m *flete.MockRepository)
		wantStatus int
		wantFields []string
	}

	tests := []testCase{
		{
			name: "in transit with a factura",
			body: `{"fo_number":"FO-1","cliente_id":"` + clientID.String() + `","status":"En Transito","destination":"Maracay",
				"costo_aproximado":250.5,"chofer":{"monto":80},
				"facturas":[{"invoice_number":"F-1","client_name":"Polar","load_date":"2026-10-01"}]}`,
			setupMock: func(m *flete.MockRepository) {
				m.EXPECT().CreateFlete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, f *flete.Flete) error {
					assert.Equal(t, int64(25050), *f.EstimatedCost)
					assert.Equal(t, int64(8000), *f.Driver.Amount)
					require.Len(t, f.Facturas, 1)
					assert.Equal(t, "F-1", f.Facturas[0].InvoiceNumber)

					return nil
				})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "pagado without payment fields",
			body: `{"fo_number":"FO-1","cliente_id":"` + clientID.String() + `","status":"Pagado","destination":"Maracay"}`,
			setupMock:  func(m *flete.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantFields: []string{"pago_fecha", "monto_pagado_origen"},
		},
		{
			name:       "factura without load date",
			body:       `{"fo_number":"FO-1","cliente_id":"` + clientID.String() + `","status":"En Transito","destination":"Maracay","facturas":[{"invoice_number":"F-1","client_name":"Polar"}]}`,
			setupMock:  func(m *flete.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := flete.NewMockRepository(ctrl)
			tt.setupMock(repo)

			w := serve(newRouter(repo), http.MethodPost, "/", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			for _, f := range tt.wantFields {
				assert.Contains(t, w.Body.String(), `"field":"`+f+`"`)
			}
		})
	}
}

func TestHandler_ChangeStatus(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name       string
		body       string
		setupMock  func(m *flete.MockRepository)
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}

	tests := []testCase{
		{
			name: "pagado in bolivares derives divisa",
			body: `{"status":"Pagado","pago_fecha":"2026-10-15","monto_pagado_origen":6000,"moneda_origen":"VES","tasa_cambio":"30"}`,
			setupMock: func(m *flete.MockRepository) {
				m.EXPECT().GetFlete(gomock.Any(), id).Return(inTransit(id), nil)
				m.EXPECT().UpdateFlete(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Pagado", body["status"])
				assert.Equal(t, "2026-10-15", body["pago_fecha"])
				assert.InDelta(t, 200.0, body["monto_pagado_usd"], 0.001)
				assert.InDelta(t, 6000.0, body["monto_pagado_ves"], 0.001)
			},
		},
		{
			name: "pagado in bolivares without rate",
			body: `{"status":"Pagado","pago_fecha":"2026-10-15","monto_pagado_origen":6000,"moneda_origen":"VES"}`,
			setupMock: func(m *flete.MockRepository) {
				m.EXPECT().GetFlete(gomock.Any(), id).Return(inTransit(id), nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["errors"].([]any)[0].(map[string]any)["message"], validate.MsgVESRateRequired)
			},
		},
		{
			name: "permissive move back to en transito clears personnel payments",
			body: `{"status":"En Transito"}`,
			setupMock: func(m *flete.MockRepository) {
				f := inTransit(id)
				f.Status = flete.StatusInvoiced
				f.Driver.Paid = true
				f.Driver.PaidAt = new(f.CreatedAt)

				m.EXPECT().GetFlete(gomock.Any(), id).Return(f, nil)
				m.EXPECT().UpdateFlete(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				driver := body["chofer"].(map[string]any)
				assert.Equal(t, false, driver["pagado"])
				assert.Nil(t, driver["fecha_pago"])
				assert.InDelta(t, 80.0, driver["monto"], 0.001)
			},
		},
		{
			name: "unknown flete",
			body: `{"status":"Despachado"}`,
			setupMock: func(m *flete.MockRepository) {
				m.EXPECT().GetFlete(gomock.Any(), id).Return(nil, flete.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := flete.NewMockRepository(ctrl)
			tt.setupMock(repo)

			w := serve(newRouter(repo), http.MethodPatch, "/"+id.String()+"/status", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.check != nil {
				var body map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				tt.check(t, body)
			}
		})
	}
}

func TestHandler_PayPersonnel(t *testing.T) {
	id := uuid.New()

	t.Run("invalid role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		w := serve(newRouter(flete.NewMockRepository(ctrl)), http.MethodPost, "/"+id.String()+"/personal/copiloto", `{"fecha_pago":"2026-10-15"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"role"`)
	})

	t.Run("driver paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := inTransit(id)
		f.Status = flete.StatusDispatched

		repo := flete.NewMockRepository(ctrl)
		repo.EXPECT().GetFlete(gomock.Any(), id).Return(f, nil)
		repo.EXPECT().UpdateFlete(gomock.Any(), gomock.Any()).Return(nil)

		w := serve(newRouter(repo), http.MethodPost, "/"+id.String()+"/personal/chofer", `{"fecha_pago":"2026-10-15","moneda":"USD"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"pagado":true`)
	})
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	driverID := uuid.New()

	repo := flete.NewMockRepository(ctrl)
	repo.EXPECT().ListFletes(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, filter flete.ListFilter) ([]*flete.Flete, int, error) {
		assert.Equal(t, []flete.Status{flete.StatusInTransit, flete.StatusPaid, flete.StatusInvoiced}, filter.Statuses)
		require.NotNil(t, filter.DriverID)
		assert.Equal(t, driverID, *filter.DriverID)
		assert.Equal(t, "valencia", filter.Search)
		assert.Equal(t, 2, filter.Page.Page)

		return []*flete.Flete{inTransit(uuid.New())}, 11, nil
	})

	target := "/?status=En%20Transito,Pagado&status=Facturado&driver_id=" + driverID.String() + "&q=valencia&page=2"
	w := serve(newRouter(repo), http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []map[string]any `json:"items"`
		Total int              `json:"total"`
		Page  int              `json:"page"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Items, 1)
	assert.Equal(t, 11, body.Total)
	assert.Equal(t, 2, body.Page)
}

func TestHandler_DeleteFactura(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id, facturaID := uuid.New(), uuid.New()

	repo := flete.NewMockRepository(ctrl)
	repo.EXPECT().DeleteFactura(gomock.Any(), id, facturaID).Return(flete.ErrFacturaNotFound)

	w := serve(newRouter(repo), http.MethodDelete, "/"+id.String()+"/facturas/"+facturaID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
