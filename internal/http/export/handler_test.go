package export

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fletes/internal/debt"
	"github.com/MrJamesThe3rd/fletes/internal/expense"
	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/page"
	"github.com/MrJamesThe3rd/fletes/internal/report"
)

func newRouter(expenses report.ExpenseLister, debts report.DebtReader) http.Handler {
	h := NewHandler(report.NewService(expenses, debts))
	h.now = func() time.Time { return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC) }

	r := chi.NewRouter()
	r.Get("/gastos/export", h.ExpensesCSV)
	r.Get("/deudas/resumen", h.DebtSummary)
	r.Get("/deudas/{id}/estado", h.DebtStatement)

	return r
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	return w
}

func TestHandler_ExpensesCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expenses := report.NewMockExpenseLister(ctrl)
	expenses.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, f expense.ListFilter) (page.Result[*expense.Expense], error) {
		assert.Equal(t, []money.Currency{money.USD}, f.Currencies)

		return page.Result[*expense.Expense]{
			Items: []*expense.Expense{{
				ID:          uuid.New(),
				Category:    expense.CategoryTolls,
				Description: "PEAJE",
				ExpenseDate: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
				Currency:    money.USD,
				Divisa:      new(int64(500)),
			}},
			Total:   1,
			Page:    1,
			PerPage: page.MaxPerPage,
		}, nil
	})

	w := get(newRouter(expenses, nil), "/gastos/export?currency=USD")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "gastos_20261018.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "2026-10-02,Peajes,PEAJE,USD,5.00,,,,", lines[1])
}

func TestHandler_ExpensesCSV_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expenses := report.NewMockExpenseLister(ctrl)
	expenses.EXPECT().List(gomock.Any(), gomock.Any()).Return(page.Result[*expense.Expense]{}, errors.New("db down"))

	w := get(newRouter(expenses, nil), "/gastos/export")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestHandler_DebtStatement(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name       string
		target     string
		setupMock  func(m *report.MockDebtReader)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:   "statement",
			target: "/deudas/" + id.String() + "/estado",
			setupMock: func(m *report.MockDebtReader) {
				d := &debt.Debt{ID: id, PersonaName: "Ana", Currency: money.USD, TotalDivisa: 1000}
				m.EXPECT().Get(gomock.Any(), id).Return(&debt.Balance{Debt: d, Remaining: 1000, Status: debt.StatusPending}, nil)
				m.EXPECT().Payments(gomock.Any(), id).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "Estado: Pendiente",
		},
		{
			name:   "unknown debt",
			target: "/deudas/" + id.String() + "/estado",
			setupMock: func(m *report.MockDebtReader) {
				m.EXPECT().Get(gomock.Any(), id).Return(nil, debt.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "summary",
			target: "/deudas/resumen",
			setupMock: func(m *report.MockDebtReader) {
				m.EXPECT().List(gomock.Any()).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "Deudas: 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			debts := report.NewMockDebtReader(ctrl)
			tt.setupMock(debts)

			w := get(newRouter(nil, debts), tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
