package matching

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fletes/internal/expense"
	"github.com/MrJamesThe3rd/fletes/internal/matching"
)

func serve(repo matching.Repository, method, target, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	NewHandler(matching.NewService(repo)).Routes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))

	return w
}

func TestHandler_Suggest(t *testing.T) {
	type testCase struct {
		name       string
		query      string
		setupMock  func(m *matching.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:  "matched",
			query: "?raw_description=PAGO+PDV+ESTACION+LA+VICTORIA",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "PAGO PDV ESTACION LA VICTORIA").Return(expense.CategoryFuel, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"category":"Combustible"`,
		},
		{
			name:       "missing query",
			setupMock:  func(m *matching.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			tt.setupMock(repo)

			w := serve(repo, http.MethodGet, "/suggest"+tt.query, "")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_Learn(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *matching.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "stores rule",
			body: `{"raw_pattern":"ESTACION","category":"Combustible"}`,
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().CreateRule(gomock.Any(), "ESTACION", expense.CategoryFuel).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown category",
			body:       `{"raw_pattern":"ESTACION","category":"Gasolina"}`,
			setupMock:  func(m *matching.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			tt.setupMock(repo)

			w := serve(repo, http.MethodPost, "/", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := serve(matching.NewMockRepository(ctrl), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Viáticos"`)
}
