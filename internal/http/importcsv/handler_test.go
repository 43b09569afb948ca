package importcsv

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fletes/internal/expense"
	"github.com/MrJamesThe3rd/fletes/internal/importer"
	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/rates"
)

const planilla = "Fecha;Categoría;Descripción;Moneda;Monto\n01/10/2026;Combustible;GASOIL;VES;3.650,00\n"

func multipartBody(t *testing.T, fields map[string]string, file string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if file != "" {
		fw, err := mw.CreateFormFile("file", "gastos.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(file))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

type mocks struct {
	rates      *importer.MockRateResolver
	categories *importer.MockCategorizer
	repo       *expense.MockRepository
	itx        *expense.MockImportTx
}

func newRouter(ctrl *gomock.Controller) (http.Handler, mocks) {
	m := mocks{
		rates:      importer.NewMockRateResolver(ctrl),
		categories: importer.NewMockCategorizer(ctrl),
		repo:       expense.NewMockRepository(ctrl),
		itx:        expense.NewMockImportTx(ctrl),
	}

	r := chi.NewRouter()
	NewHandler(
		importer.NewService(m.rates, m.categories, zerolog.Nop()),
		expense.NewService(m.repo),
	).Routes(r)

	return r, m
}

func TestHandler_Import(t *testing.T) {
	type testCase struct {
		name       string
		fields     map[string]string
		file       string
		setupMock  func(m mocks)
		wantStatus int
		wantBody   []string
	}

	existing := &expense.Expense{
		ID:             uuid.New(),
		Category:       expense.CategoryFuel,
		RawDescription: "GASOIL",
		ExpenseDate:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Currency:       money.VES,
		Bolivares:      new(int64(365000)),
	}

	tests := []testCase{
		{
			name:   "imports with a custom rate",
			fields: map[string]string{"tasa_cambio": "36,50"},
			file:   planilla,
			setupMock: func(m mocks) {
				m.rates.EXPECT().Resolve(gomock.Any(), money.RateCustom, gomock.Any()).Return(decimal.RequireFromString("36.5"), nil)
				m.categories.EXPECT().Categorize(gomock.Any(), gomock.Any()).Return(nil)
				m.repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(m.itx, nil)
				m.itx.EXPECT().FindDuplicates(gomock.Any(), gomock.Any()).Return(nil, nil)
				m.itx.EXPECT().CreateExpenses(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, es []*expense.Expense) error {
					require.Len(t, es, 1)
					assert.Equal(t, int64(10000), *es[0].Divisa)

					return nil
				})
				m.itx.EXPECT().Commit().Return(nil)
				m.itx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   []string{`"imported":1`, `"format":"planilla"`, `"tipo_tasa":"personalizada"`},
		},
		{
			name: "duplicate rows are returned as conflicts",
			file: planilla,
			setupMock: func(m mocks) {
				m.rates.EXPECT().Resolve(gomock.Any(), money.RateBCV, gomock.Nil()).Return(decimal.RequireFromString("36.5"), nil)
				m.categories.EXPECT().Categorize(gomock.Any(), gomock.Any()).Return(nil)
				m.repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(m.itx, nil)
				m.itx.EXPECT().FindDuplicates(gomock.Any(), gomock.Any()).Return([]*expense.Expense{existing}, nil)
				m.itx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusConflict,
			wantBody:   []string{`"conflicts":[{`, existing.ID.String()},
		},
		{
			name: "divisa rows import while the rate source is down",
			file: "Fecha;Categoría;Descripción;Moneda;Monto\n02/10/2026;Peajes;PEAJE TAZON;USD;5,00\n",
			setupMock: func(m mocks) {
				m.rates.EXPECT().Resolve(gomock.Any(), money.RateBCV, gomock.Nil()).Return(decimal.Zero, rates.ErrFetch)
				m.categories.EXPECT().Categorize(gomock.Any(), gomock.Any()).Return(nil)
				m.repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(m.itx, nil)
				m.itx.EXPECT().FindDuplicates(gomock.Any(), gomock.Any()).Return(nil, nil)
				m.itx.EXPECT().CreateExpenses(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, es []*expense.Expense) error {
					require.Len(t, es, 1)
					assert.Nil(t, es[0].Rate)
					assert.Nil(t, es[0].Bolivares)

					return nil
				})
				m.itx.EXPECT().Commit().Return(nil)
				m.itx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   []string{`"imported":1`},
		},
		{
			name:       "unreadable file",
			file:       "no;es;una;planilla\n",
			setupMock:  func(m mocks) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   []string{"no matching format"},
		},
		{
			name:       "bad rate type",
			fields:     map[string]string{"tipo_tasa": "euro"},
			file:       planilla,
			setupMock:  func(m mocks) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{`"field":"tipo_tasa"`},
		},
		{
			name:       "missing file",
			setupMock:  func(m mocks) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			router, m := newRouter(ctrl)
			tt.setupMock(m)

			body, contentType := multipartBody(t, tt.fields, tt.file)
			req := httptest.NewRequest(http.MethodPost, "/", body)
			req.Header.Set("Content-Type", contentType)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			for _, s := range tt.wantBody {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}

func TestHandler_Confirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newRouter(ctrl)

	m.repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(m.itx, nil)
	m.itx.EXPECT().CreateExpenses(gomock.Any(), gomock.Any()).Return(nil)
	m.itx.EXPECT().Commit().Return(nil)
	m.itx.EXPECT().Rollback().Return(nil)

	body := `{"params":[{"category":"Peajes","expense_date":"2026-10-02","original_currency":"USD","pago_divisa":5,"raw_description":"PEAJE"}]}`
	req := httptest.NewRequest(http.MethodPost, "/confirm", strings.NewReader(body))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"imported":1`)
}
