package validate_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

func TestRules_Payment(t *testing.T) {
	rate := decimal.NewFromInt(30)
	bcv := money.RateBCV

	type testCase struct {
		name       string
		rules      validate.Rules
		in         validate.Payment
		wantFields []string
		check      func(t *testing.T, out validate.Payment)
	}

	tests := []testCase{
		{
			name:  "DivisaClearsBolivaresFields",
			rules: validate.DebtPayments,
			in: validate.Payment{
				Type:      validate.PaymentDivisa,
				Divisa:    new(int64(20000)),
				Bolivares: new(int64(600000)),
				Rate:      &rate,
				RateType:  &bcv,
			},
			check: func(t *testing.T, out validate.Payment) {
				assert.Equal(t, int64(20000), *out.Divisa)
				assert.Nil(t, out.Bolivares)
				assert.Nil(t, out.Rate)
				assert.Nil(t, out.RateType)
			},
		},
		{
			name:  "BolivaresClearsDivisa",
			rules: validate.DebtPayments,
			in: validate.Payment{
				Type:      validate.PaymentBolivares,
				Divisa:    new(int64(20000)),
				Bolivares: new(int64(600000)),
				Rate:      &rate,
				RateType:  &bcv,
			},
			check: func(t *testing.T, out validate.Payment) {
				assert.Nil(t, out.Divisa)
				assert.Equal(t, int64(600000), *out.Bolivares)
			},
		},
		{
			name:       "BolivaresWithoutRate",
			rules:      validate.DebtPayments,
			in:         validate.Payment{Type: validate.PaymentBolivares, Bolivares: new(int64(100000))},
			wantFields: []string{validate.FieldRate, validate.FieldRateType},
		},
		{
			name:       "DivisaMissingAmount",
			rules:      validate.DebtPayments,
			in:         validate.Payment{Type: validate.PaymentDivisa, Bolivares: new(int64(100000))},
			wantFields: []string{validate.FieldDivisa},
		},
		{
			name:       "BolivaresMissingAmount",
			rules:      validate.DebtPayments,
			in:         validate.Payment{Type: validate.PaymentBolivares, Divisa: new(int64(100)), Rate: &rate, RateType: &bcv},
			wantFields: []string{validate.FieldBolivares},
		},
		{
			name:       "ZeroRate",
			rules:      validate.DebtPayments,
			in:         validate.Payment{Type: validate.PaymentBolivares, Bolivares: new(int64(100)), Rate: new(decimal.Zero), RateType: &bcv},
			wantFields: []string{validate.FieldRate},
		},
		{
			name:       "UnknownType",
			rules:      validate.DebtPayments,
			in:         validate.Payment{Type: "cheque"},
			wantFields: []string{validate.FieldPaymentType},
		},
		{
			name:  "RateTypeOptionalInShipments",
			rules: validate.Shipments,
			in:    validate.Payment{Type: validate.PaymentBolivares, Bolivares: new(int64(100)), Rate: &rate},
		},
		{
			name:       "RateTypeOutsideContext",
			rules:      validate.Rules{RateTypes: []money.RateType{money.RateBCV}, RequireRateType: true},
			in:         validate.Payment{Type: validate.PaymentBolivares, Bolivares: new(int64(100)), Rate: &rate, RateType: new(money.RateParallel)},
			wantFields: []string{validate.FieldRateType},
		},
		{
			name:  "CustomRateAlwaysAccepted",
			rules: validate.Rules{RateTypes: []money.RateType{money.RateBCV}, RequireRateType: true},
			in:    validate.Payment{Type: validate.PaymentBolivares, Bolivares: new(int64(100)), Rate: &rate, RateType: new(money.RateCustom)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errs := tt.rules.Payment(tt.in)

			if len(tt.wantFields) == 0 {
				require.Empty(t, errs)
			}

			for _, f := range tt.wantFields {
				assert.True(t, errs.Has(f), "expected error on %s, got %v", f, errs)
			}

			if tt.check != nil {
				tt.check(t, out)
			}
		})
	}
}

func TestRules_Payment_RateMessage(t *testing.T) {
	_, errs := validate.DebtPayments.Payment(validate.Payment{
		Type:      validate.PaymentBolivares,
		Bolivares: new(int64(100000)),
	})

	require.Len(t, errs, 2)
	assert.Equal(t, "La tasa de cambio es requerida para pagos en bolívares", errs.Message(validate.FieldRate))
	assert.Equal(t, "El tipo de tasa es requerido para pagos en bolívares", errs.Message(validate.FieldRateType))
}

func TestRules_Amounts(t *testing.T) {
	rate := decimal.RequireFromString("36.5")
	paralelo := money.RateParallel

	tests := []struct {
		name       string
		in         validate.Amounts
		wantFields []string
	}{
		{
			name: "USDValid",
			in:   validate.Amounts{Currency: money.USD, Divisa: new(int64(1500))},
		},
		{
			name: "VESValid",
			in:   validate.Amounts{Currency: money.VES, Bolivares: new(int64(54750)), Rate: &rate, RateType: &paralelo},
		},
		{
			name:       "USDWithOnlyBolivares",
			in:         validate.Amounts{Currency: money.USD, Bolivares: new(int64(54750)), Rate: &rate, RateType: &paralelo},
			wantFields: []string{validate.FieldDivisa},
		},
		{
			name:       "VESWithOnlyDivisa",
			in:         validate.Amounts{Currency: money.VES, Divisa: new(int64(1500))},
			wantFields: []string{validate.FieldBolivares},
		},
		{
			name:       "BolivaresNeedRateAndType",
			in:         validate.Amounts{Currency: money.VES, Bolivares: new(int64(100))},
			wantFields: []string{validate.FieldRate, validate.FieldRateType},
		},
		{
			name:       "USDRateNeedsType",
			in:         validate.Amounts{Currency: money.USD, Divisa: new(int64(1500)), Rate: &rate},
			wantFields: []string{validate.FieldRateType},
		},
		{
			name: "USDWithDerivedBolivares",
			in:   validate.Amounts{Currency: money.USD, Divisa: new(int64(1500)), Bolivares: new(int64(54750)), Rate: &rate, RateType: &paralelo},
		},
		{
			name:       "NegativeAmount",
			in:         validate.Amounts{Currency: money.USD, Divisa: new(int64(-1))},
			wantFields: []string{validate.FieldDivisa},
		},
		{
			name:       "UnknownCurrency",
			in:         validate.Amounts{Currency: "EUR", Divisa: new(int64(1))},
			wantFields: []string{validate.FieldCurrency},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validate.Expenses.Amounts(tt.in)

			if len(tt.wantFields) == 0 {
				assert.Empty(t, errs)
				return
			}

			for _, f := range tt.wantFields {
				assert.True(t, errs.Has(f), "expected error on %s, got %v", f, errs)
			}
		})
	}
}

func TestRate(t *testing.T) {
	var errs validate.Errors

	validate.Rate(&errs, "pago_tasa_cambio_chofer", money.VES, nil)
	validate.Rate(&errs, "tasa_cambio", money.USD, new(decimal.NewFromInt(-1)))
	validate.Rate(&errs, "otra", money.USD, nil)

	require.Len(t, errs, 2)
	assert.Equal(t, validate.MsgVESRateRequired, errs.Message("pago_tasa_cambio_chofer"))
	assert.Equal(t, validate.MsgRatePositive, errs.Message("tasa_cambio"))
}

type vehicleForm struct {
	Name  string `json:"name" validate:"required"`
	Plate string `json:"plate" validate:"required"`
	Items []item `json:"items" validate:"dive"`
}

type item struct {
	Weight int64 `json:"weight_kg" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	errs := validate.Struct(vehicleForm{Name: "Mack", Items: []item{{Weight: -2}}})

	require.Len(t, errs, 2)
	assert.Equal(t, "Requerido", errs.Message("plate"))
	assert.Equal(t, "Debe ser ≥ 0", errs.Message("items[0].weight_kg"))

	assert.Nil(t, validate.Struct(vehicleForm{Name: "Mack", Plate: "AB123CD"}))
}

func TestErrors(t *testing.T) {
	var errs validate.Errors
	assert.NoError(t, errs.OrNil())

	errs.Add("a", "uno")
	errs.Add("b", "dos")

	err := errs.OrNil()
	require.Error(t, err)
	assert.Equal(t, "a: uno; b: dos", err.Error())

	var target validate.Errors
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "facturas[1].a", target.Prefix("facturas[1]")[0].Field)
}
