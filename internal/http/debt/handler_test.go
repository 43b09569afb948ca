package debt

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fletes/internal/debt"
	"github.com/MrJamesThe3rd/fletes/internal/money"
)

func newRouter(repo debt.Repository) http.Handler {
	r := chi.NewRouter()
	NewHandler(debt.NewService(repo)).Routes(r)

	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *debt.MockRepository)
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}

	tests := []testCase{
		{
			name: "creates with amounts in cents",
			body: `{"persona_name":"Transporte Rivas","total_divisa":1500.75,"due_date":"2026-11-30"}`,
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().CreateDebt(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, d *debt.Debt) error {
					assert.Equal(t, int64(150075), d.TotalDivisa)
					assert.Equal(t, money.USD, d.Currency)
					require.NotNil(t, d.DueDate)
					assert.Equal(t, time.November, d.DueDate.Month())

					d.ID = uuid.New()

					return nil
				})
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, body map[string]any) {
				assert.InDelta(t, 1500.75, body["total_divisa"], 0.001)
				assert.InDelta(t, 1500.75, body["saldo_restante"], 0.001)
				assert.Equal(t, "Pendiente", body["estado"])
				assert.Equal(t, "2026-11-30", body["due_date"])
			},
		},
		{
			name:       "validation errors are listed per field",
			body:       `{"persona_name":"","total_divisa":0}`,
			setupMock:  func(m *debt.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				errs, ok := body["errors"].([]any)
				require.True(t, ok)
				assert.Len(t, errs, 2)
			},
		},
		{
			name:       "unknown field",
			body:       `{"persona":"x"}`,
			setupMock:  func(m *debt.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := debt.NewMockRepository(ctrl)
			tt.setupMock(repo)

			w := serve(newRouter(repo), http.MethodPost, "/", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.check != nil {
				var body map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				tt.check(t, body)
			}
		})
	}
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d1 := &debt.Debt{ID: uuid.New(), PersonaName: "A", Currency: money.USD, TotalDivisa: 100000}
	d2 := &debt.Debt{ID: uuid.New(), PersonaName: "B", Currency: money.USD, TotalDivisa: 50000}

	repo := debt.NewMockRepository(ctrl)
	repo.EXPECT().ListDebts(gomock.Any()).Return([]*debt.Debt{d1, d2}, nil)
	repo.EXPECT().ListPayments(gomock.Any(), debt.PaymentFilter{}).Return([]*debt.Payment{
		{DebtID: d1.ID, Divisa: new(int64(25000))},
		{DebtID: d2.ID, Divisa: new(int64(60000))},
	}, nil)

	w := serve(newRouter(repo), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []struct {
			Remaining float64 `json:"saldo_restante"`
			Overpaid  float64 `json:"excedente"`
			Status    string  `json:"estado"`
		} `json:"items"`
		Summary struct {
			TotalDebt   float64 `json:"total_deuda"`
			TotalPaid   float64 `json:"total_pagado"`
			PercentPaid int64   `json:"porcentaje_pagado"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Items, 2)
	assert.Equal(t, 750.0, resp.Items[0].Remaining)
	assert.Equal(t, "Parcial", resp.Items[0].Status)
	assert.Equal(t, 0.0, resp.Items[1].Remaining)
	assert.Equal(t, 100.0, resp.Items[1].Overpaid)
	assert.Equal(t, "Pagado", resp.Items[1].Status)

	assert.Equal(t, 1500.0, resp.Summary.TotalDebt)
	assert.Equal(t, 750.0, resp.Summary.TotalPaid)
	assert.Equal(t, int64(50), resp.Summary.PercentPaid)
}

func TestHandler_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := debt.NewMockRepository(ctrl)
		repo.EXPECT().GetDebt(gomock.Any(), id).Return(nil, debt.ErrNotFound)

		w := serve(newRouter(repo), http.MethodGet, "/"+id.String(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		w := serve(newRouter(debt.NewMockRepository(ctrl)), http.MethodGet, "/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_RecordPayment(t *testing.T) {
	id := uuid.New()
	d := &debt.Debt{ID: id, PersonaName: "A", Currency: money.USD, TotalDivisa: 100000}

	type testCase struct {
		name       string
		body       string
		setupMock  func(m *debt.MockRepository)
		wantStatus int
		wantFields []string
	}

	tests := []testCase{
		{
			name: "bolivares payment keeps its rate",
			body: `{"payment_date":"2026-10-10","payment_type":"bolivares","pago_bolivares":3650,"tasa_cambio":"36.5","tipo_tasa":"bcv"}`,
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), id).Return(d, nil)
				m.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, p *debt.Payment) error {
					assert.Equal(t, int64(365000), *p.Bolivares)
					assert.True(t, decimal.RequireFromString("36.5").Equal(*p.Rate))

					return nil
				})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "bolivares without rate",
			body: `{"payment_date":"2026-10-10","payment_type":"bolivares","pago_bolivares":3650}`,
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), id).Return(d, nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantFields: []string{"tasa_cambio"},
		},
		{
			name:       "malformed amount",
			body:       `{"payment_type":"divisa","pago_divisa":"diez"}`,
			setupMock:  func(m *debt.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := debt.NewMockRepository(ctrl)
			tt.setupMock(repo)

			w := serve(newRouter(repo), http.MethodPost, "/"+id.String()+"/pagos", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			for _, f := range tt.wantFields {
				assert.Contains(t, w.Body.String(), `"field":"`+f+`"`)
			}
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := debt.NewMockRepository(ctrl)
	repo.EXPECT().DeleteDebt(gomock.Any(), id).Return(nil)

	w := serve(newRouter(repo), http.MethodDelete, "/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
