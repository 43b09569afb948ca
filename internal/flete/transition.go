package flete

import (
	"fmt"

	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

const (
	FieldStatus     = "status"
	FieldPaidAt     = "pago_fecha"
	FieldAmountPaid = "monto_pagado_origen"
	FieldCurrency   = "moneda_origen"
	FieldRate       = "tasa_cambio"

	msgStatusInvalid = "Estado no válido"
)

// ApplyStatusTransition returns a copy of f moved to next with the side
// effects of entering that status applied. f is never modified.
//
// Entering Pagado requires the origin payment date and amount, plus the rate
// when the payment was in VES. Entering En Transito clears both personnel
// payments. Any status other than Pagado drops the origin payment.
func ApplyStatusTransition(f *Flete, next Status) (*Flete, validate.Errors) {
	var errs validate.Errors

	if !next.Valid() {
		errs.Add(FieldStatus, msgStatusInvalid)
		return nil, errs
	}

	out := *f
	out.Status = next

	switch next {
	case StatusPaid:
		if out.Currency == "" {
			out.Currency = money.USD
		}

		errs = append(errs, checkOriginPayment(&out)...)
	case StatusInTransit:
		out.Driver.reset()
		out.Helper.reset()
	}

	if next != StatusPaid {
		out.clearOriginPayment()
	}

	if len(errs) > 0 {
		return nil, errs
	}

	if next == StatusPaid {
		if err := deriveOriginAmounts(&out); err != nil {
			errs.Add(FieldRate, validate.MsgRatePositive)
			return nil, errs
		}
	}

	return &out, nil
}

func checkOriginPayment(f *Flete) validate.Errors {
	var errs validate.Errors

	if f.PaidAt == nil {
		errs.Add(FieldPaidAt, validate.MsgPaidFieldsRequired)
	}

	if f.AmountPaid == nil {
		errs.Add(FieldAmountPaid, validate.MsgPaidFieldsRequired)
	}

	currency := f.Currency
	if currency == "" {
		currency = money.USD
	}

	if !currency.Valid() {
		errs.Add(FieldCurrency, validate.MsgCurrencyInvalid)
	}

	validate.Rate(&errs, FieldRate, currency, f.Rate)

	return errs
}

// deriveOriginAmounts fills the USD and VES views of the origin payment.
func deriveOriginAmounts(f *Flete) error {
	amount := *f.AmountPaid

	switch f.Currency {
	case money.VES:
		usd, err := money.ToOrigin(amount, *f.Rate)
		if err != nil {
			return fmt.Errorf("converting origin payment: %w", err)
		}

		f.AmountPaidUSD, f.AmountPaidVES = &usd, &amount
	default:
		f.AmountPaidUSD, f.AmountPaidVES = &amount, nil

		if f.Rate != nil {
			ves, err := money.ToVES(amount, *f.Rate)
			if err != nil {
				return fmt.Errorf("converting origin payment: %w", err)
			}

			f.AmountPaidVES = &ves
		}
	}

	return nil
}
