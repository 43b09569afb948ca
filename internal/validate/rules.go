package validate

import (
	"slices"

	"github.com/MrJamesThe3rd/fletes/internal/money"
)

// Column names used as field identifiers.
const (
	FieldPaymentType = "payment_type"
	FieldCurrency    = "original_currency"
	FieldDivisa      = "pago_divisa"
	FieldBolivares   = "pago_bolivares"
	FieldRate        = "tasa_cambio"
	FieldRateType    = "tipo_tasa"
)

const (
	MsgDivisaRequired       = "El monto en divisa es requerido"
	MsgBolivaresRequired    = "El monto en bolívares es requerido"
	MsgRateRequired         = "La tasa de cambio es requerida para pagos en bolívares"
	MsgRateTypeRequired     = "El tipo de tasa es requerido para pagos en bolívares"
	MsgRatePositive         = "La tasa de cambio debe ser mayor a 0"
	MsgNegative             = "El monto no puede ser negativo"
	MsgRateTypeInvalid      = "Tipo de tasa no válido"
	MsgCurrencyInvalid      = "Moneda no válida"
	MsgPaymentTypeInvalid   = "Tipo de pago no válido"
	MsgUSDRequired          = "Debe ingresar el pago en USD"
	MsgVESRequired          = "Debe ingresar el pago en VES"
	MsgRateAndTypeRequired  = "Si hay pago en bolívares, la tasa de cambio y el tipo de tasa son obligatorios"
	MsgRequired             = "Requerido"
	MsgVESRateRequired      = "Cuando la moneda es VES, la tasa de cambio es requerida"
	MsgPaidFieldsRequired   = "Cuando el status es \"Pagado\", la fecha y el monto de pago son requeridos"
	MsgPersonnelDateMissing = "La fecha de pago es requerida"
	MsgAmountRange          = "El monto excede el máximo permitido"
	MsgRateTypeWithRate     = "Si indica una tasa de cambio, el tipo de tasa es obligatorio"
	MsgConversionRange      = "La conversión con esta tasa excede el monto máximo"
)

// Rules is the validator configuration of one input context.
type Rules struct {
	// RateTypes lists the rate types accepted in this context. Manual rates
	// are accepted everywhere so a failed rate fetch never blocks input.
	RateTypes []money.RateType
	// RequireRateType makes tipo_tasa mandatory whenever bolívares are present.
	RequireRateType bool
}

var (
	DebtPayments = Rules{
		RateTypes:       []money.RateType{money.RateBCV, money.RateParallel, money.RateAverage},
		RequireRateType: true,
	}
	Expenses = Rules{
		RateTypes:       []money.RateType{money.RateParallel, money.RateBCV, money.RateAverage},
		RequireRateType: true,
	}
	// Shipments record only the rate itself on fletes and personnel payments.
	Shipments = Rules{
		RateTypes: []money.RateType{money.RateBCV, money.RateParallel, money.RateAverage},
	}
)

// Allows reports whether t may be stored in this context.
func (r Rules) Allows(t money.RateType) bool {
	return t == money.RateCustom || slices.Contains(r.RateTypes, t)
}

func (r Rules) checkRateType(errs *Errors, t *money.RateType) {
	if t != nil && !r.Allows(*t) {
		errs.Add(FieldRateType, MsgRateTypeInvalid)
	}
}
