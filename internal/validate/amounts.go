package validate

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/money"
)

// Amounts is a currency-tagged amount pair where the currency, not a payment
// type, decides which amount is mandatory. Expenses use it.
type Amounts struct {
	Currency  money.Currency
	Divisa    *int64
	Bolivares *int64
	Rate      *decimal.Decimal
	RateType  *money.RateType
}

func (r Rules) Amounts(a Amounts) Errors {
	var errs Errors

	if a.Divisa != nil && *a.Divisa < 0 {
		errs.Add(FieldDivisa, MsgNegative)
	}

	if a.Bolivares != nil && *a.Bolivares < 0 {
		errs.Add(FieldBolivares, MsgNegative)
	}

	switch a.Currency {
	case money.USD:
		if a.Divisa == nil || *a.Divisa <= 0 {
			errs.Add(FieldDivisa, MsgUSDRequired)
		}
	case money.VES:
		if a.Bolivares == nil || *a.Bolivares <= 0 {
			errs.Add(FieldBolivares, MsgVESRequired)
		}
	default:
		errs.Add(FieldCurrency, MsgCurrencyInvalid)
	}

	if a.Rate != nil && !a.Rate.IsPositive() {
		errs.Add(FieldRate, MsgRatePositive)
	}

	if a.Bolivares != nil && a.Rate == nil {
		errs.Add(FieldRate, MsgRateAndTypeRequired)
	}

	// A rate derives the other amount on save, so its type is needed even
	// when no bolívares were typed in.
	switch {
	case !r.RequireRateType || a.RateType != nil:
	case a.Bolivares != nil:
		errs.Add(FieldRateType, MsgRateAndTypeRequired)
	case a.Rate != nil:
		errs.Add(FieldRateType, MsgRateTypeWithRate)
	}

	r.checkRateType(&errs, a.RateType)

	return errs
}

// Rate checks a single rate field that becomes mandatory when the currency is VES.
func Rate(errs *Errors, field string, c money.Currency, rate *decimal.Decimal) {
	switch {
	case rate != nil && !rate.IsPositive():
		errs.Add(field, MsgRatePositive)
	case rate == nil && c == money.VES:
		errs.Add(field, MsgVESRateRequired)
	}
}
