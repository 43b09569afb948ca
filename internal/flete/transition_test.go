package flete_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fletes/internal/flete"
	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

func paidFlete() *flete.Flete {
	paidAt := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	driverPaidAt := time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC)

	return &flete.Flete{
		ID:          uuid.New(),
		FONumber:    "FO-1024",
		ClientID:    uuid.New(),
		Status:      flete.StatusPaid,
		Destination: "Valencia",
		PaidAt:      &paidAt,
		AmountPaid:  new(int64(80000)),
		Currency:    money.USD,
		Driver: flete.Personnel{
			Amount:   new(int64(15000)),
			Paid:     true,
			PaidAt:   &driverPaidAt,
			Currency: money.VES,
			Rate:     new(decimal.NewFromInt(36)),
		},
		Helper: flete.Personnel{
			Amount:   new(int64(5000)),
			Paid:     true,
			PaidAt:   &driverPaidAt,
			Currency: money.USD,
		},
	}
}

func TestApplyStatusTransition_InTransitClearsPersonnel(t *testing.T) {
	f := paidFlete()

	got, errs := flete.ApplyStatusTransition(f, flete.StatusInTransit)
	require.Empty(t, errs)

	assert.Equal(t, flete.StatusInTransit, got.Status)

	for _, p := range []flete.Personnel{got.Driver, got.Helper} {
		assert.False(t, p.Paid)
		assert.Nil(t, p.PaidAt)
		assert.Equal(t, money.USD, p.Currency)
		assert.Nil(t, p.Rate)
	}

	// Amounts owed survive.
	assert.Equal(t, int64(15000), *got.Driver.Amount)
	assert.Equal(t, int64(5000), *got.Helper.Amount)

	// Leaving Pagado drops the client payment.
	assert.Nil(t, got.PaidAt)
	assert.Nil(t, got.AmountPaid)
	assert.Equal(t, money.USD, got.Currency)
}

func TestApplyStatusTransition_DoesNotMutateInput(t *testing.T) {
	f := paidFlete()

	_, errs := flete.ApplyStatusTransition(f, flete.StatusInTransit)
	require.Empty(t, errs)

	assert.Equal(t, flete.StatusPaid, f.Status)
	assert.True(t, f.Driver.Paid)
	assert.NotNil(t, f.Driver.PaidAt)
	assert.Equal(t, money.VES, f.Driver.Currency)
	assert.NotNil(t, f.PaidAt)
}

func TestApplyStatusTransition_Permissive(t *testing.T) {
	for _, from := range flete.Statuses {
		for _, to := range flete.Statuses {
			if to == flete.StatusPaid {
				continue
			}

			f := &flete.Flete{Status: from}

			got, errs := flete.ApplyStatusTransition(f, to)
			assert.Empty(t, errs, "%s -> %s", from, to)
			assert.Equal(t, to, got.Status)
		}
	}
}

func TestApplyStatusTransition_EnteringPaid(t *testing.T) {
	paidAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	type args struct {
		f *flete.Flete
	}

	type testCase struct {
		name       string
		args       args
		wantFields []string
		check      func(t *testing.T, f *flete.Flete)
	}

	tests := []testCase{
		{
			name:       "MissingDateAndAmount",
			args:       args{f: &flete.Flete{Status: flete.StatusInvoiced}},
			wantFields: []string{flete.FieldPaidAt, flete.FieldAmountPaid},
		},
		{
			name: "VESWithoutRate",
			args: args{f: &flete.Flete{
				Status:     flete.StatusInvoiced,
				PaidAt:     &paidAt,
				AmountPaid: new(int64(300000)),
				Currency:   money.VES,
			}},
			wantFields: []string{flete.FieldRate},
		},
		{
			name: "VESZeroRate",
			args: args{f: &flete.Flete{
				Status:     flete.StatusInvoiced,
				PaidAt:     &paidAt,
				AmountPaid: new(int64(300000)),
				Currency:   money.VES,
				Rate:       new(decimal.Zero),
			}},
			wantFields: []string{flete.FieldRate},
		},
		{
			name: "USDWithoutRate",
			args: args{f: &flete.Flete{
				Status:     flete.StatusInvoiced,
				PaidAt:     &paidAt,
				AmountPaid: new(int64(80000)),
			}},
			check: func(t *testing.T, f *flete.Flete) {
				assert.Equal(t, money.USD, f.Currency)
				assert.Equal(t, int64(80000), *f.AmountPaidUSD)
				assert.Nil(t, f.AmountPaidVES)
			},
		},
		{
			name: "VESDerivesUSD",
			args: args{f: &flete.Flete{
				Status:     flete.StatusDispatched,
				PaidAt:     &paidAt,
				AmountPaid: new(int64(600000)),
				Currency:   money.VES,
				Rate:       new(decimal.NewFromInt(30)),
			}},
			check: func(t *testing.T, f *flete.Flete) {
				assert.Equal(t, int64(20000), *f.AmountPaidUSD)
				assert.Equal(t, int64(600000), *f.AmountPaidVES)
			},
		},
		{
			name: "USDWithRateDerivesVES",
			args: args{f: &flete.Flete{
				Status:     flete.StatusDispatched,
				PaidAt:     &paidAt,
				AmountPaid: new(int64(10000)),
				Currency:   money.USD,
				Rate:       new(decimal.RequireFromString("36.5")),
			}},
			check: func(t *testing.T, f *flete.Flete) {
				assert.Equal(t, int64(10000), *f.AmountPaidUSD)
				assert.Equal(t, int64(365000), *f.AmountPaidVES)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := flete.ApplyStatusTransition(tt.args.f, flete.StatusPaid)

			if len(tt.wantFields) > 0 {
				assert.Nil(t, got)

				for _, field := range tt.wantFields {
					assert.True(t, errs.Has(field), "missing error for %s: %v", field, errs)
				}

				return
			}

			require.Empty(t, errs)
			assert.Equal(t, flete.StatusPaid, got.Status)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestApplyStatusTransition_InvalidStatus(t *testing.T) {
	got, errs := flete.ApplyStatusTransition(&flete.Flete{Status: flete.StatusInTransit}, flete.Status("Perdido"))

	assert.Nil(t, got)
	assert.True(t, errs.Has(flete.FieldStatus))
}

func TestApplyStatusTransition_VESMessage(t *testing.T) {
	paidAt := time.Now()

	_, errs := flete.ApplyStatusTransition(&flete.Flete{
		PaidAt:     &paidAt,
		AmountPaid: new(int64(100)),
		Currency:   money.VES,
	}, flete.StatusPaid)

	assert.Equal(t, validate.MsgVESRateRequired, errs.Message(flete.FieldRate))
}
