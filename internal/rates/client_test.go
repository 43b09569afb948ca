package rates_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/rates"
)

const dollarBody = `{
	"datetime": {"date": "viernes, 14 de marzo de 2025", "time": "09:12:40 AM"},
	"monitors": {
		"bcv": {"price": 64.71, "last_update": "14/03/2025, 12:00 AM", "title": "Banco Central de Venezuela"},
		"enparalelovzla": {"price": 94.36, "last_update": "13/03/2025, 01:03 PM", "title": "EnParaleloVzla"}
	}
}`

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "alcambio", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(dollarBody))
	}))
	defer srv.Close()

	c := rates.NewClient(srv.URL+"/api/v2/dollar?page=alcambio", time.Second, zerolog.Nop())

	snap, err := c.Fetch(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("64.71").Equal(snap.BCV.Price))
	assert.True(t, decimal.RequireFromString("94.36").Equal(snap.Parallel.Price))
	assert.True(t, decimal.RequireFromString("79.54").Equal(snap.Average.Price), snap.Average.Price.String())
	assert.Equal(t, "14/03/2025, 12:00 AM", snap.BCV.LastUpdate)
	assert.Equal(t, "viernes, 14 de marzo de 2025 09:12:40 AM", snap.Average.LastUpdate)
	assert.Equal(t, money.RateAverage, snap.Average.Type)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestClient_Fetch_Failures(t *testing.T) {
	type testCase struct {
		name    string
		handler http.HandlerFunc
	}

	tests := []testCase{
		{
			name: "ServerError",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "BadJSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte("<html>"))
			},
		},
		{
			name: "MissingMonitor",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"monitors": {"bcv": {"price": 60}}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := rates.NewClient(srv.URL, time.Second, zerolog.Nop()).Fetch(context.Background())
			assert.ErrorIs(t, err, rates.ErrFetch)

			var fe *rates.FetchError
			assert.True(t, errors.As(err, &fe))
		})
	}
}

func TestAverage(t *testing.T) {
	// 36.005 rounds half up.
	got := rates.Average(decimal.RequireFromString("36.00"), decimal.RequireFromString("36.01"))
	assert.Equal(t, "36.01", got.StringFixed(2))
}

func TestSnapshot_Rate(t *testing.T) {
	snap := rates.Snapshot{
		BCV:      rates.Quote{Price: decimal.NewFromInt(60)},
		Parallel: rates.Quote{Price: decimal.NewFromInt(80)},
		Average:  rates.Quote{Price: decimal.NewFromInt(70)},
	}

	r, ok := snap.Rate(money.RateParallel)
	assert.True(t, ok)
	assert.True(t, r.Equal(decimal.NewFromInt(80)))

	_, ok = snap.Rate(money.RateCustom)
	assert.False(t, ok)

	_, ok = rates.Snapshot{}.Rate(money.RateBCV)
	assert.False(t, ok)
}
