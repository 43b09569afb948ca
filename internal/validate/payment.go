package validate

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/money"
)

// PaymentType selects which amount of a debt payment is authoritative.
type PaymentType string

const (
	PaymentDivisa    PaymentType = "divisa"
	PaymentBolivares PaymentType = "bolivares"
)

// Payment is the amount pair of a debt payment as entered.
type Payment struct {
	Type      PaymentType
	Divisa    *int64
	Bolivares *int64
	Rate      *decimal.Decimal
	RateType  *money.RateType
}

// Payment checks p against the payment-type rules and returns it with the
// non-authoritative fields cleared. The returned record is only meaningful
// when no errors are reported.
func (r Rules) Payment(p Payment) (Payment, Errors) {
	var errs Errors

	out := p

	switch p.Type {
	case PaymentDivisa:
		if p.Divisa == nil || *p.Divisa <= 0 {
			errs.Add(FieldDivisa, MsgDivisaRequired)
		}

		out.Bolivares, out.Rate, out.RateType = nil, nil, nil
	case PaymentBolivares:
		if p.Bolivares == nil || *p.Bolivares <= 0 {
			errs.Add(FieldBolivares, MsgBolivaresRequired)
		}

		switch {
		case p.Rate == nil:
			errs.Add(FieldRate, MsgRateRequired)
		case !p.Rate.IsPositive():
			errs.Add(FieldRate, MsgRatePositive)
		}

		if p.RateType == nil && r.RequireRateType {
			errs.Add(FieldRateType, MsgRateTypeRequired)
		}

		r.checkRateType(&errs, p.RateType)

		out.Divisa = nil
	default:
		errs.Add(FieldPaymentType, MsgPaymentTypeInvalid)
	}

	return out, errs
}
