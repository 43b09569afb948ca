package flete

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

const msgPersonnelInTransit = "No se puede registrar el pago mientras el flete está en tránsito"

// Params is a flete as entered on the form.
type Params struct {
	FONumber      string           `json:"fo_number" validate:"required"`
	DriverID      *uuid.UUID       `json:"driver_id"`
	ClientID      uuid.UUID        `json:"cliente_id" validate:"required"`
	VehicleID     *uuid.UUID       `json:"vehicle_id"`
	Status        Status           `json:"status" validate:"required"`
	Destination   string           `json:"destination" validate:"required"`
	EstimatedCost *int64           `json:"costo_aproximado" validate:"omitempty,gte=0"`
	PaidAt        *time.Time       `json:"pago_fecha"`
	AmountPaid    *int64           `json:"monto_pagado_origen" validate:"omitempty,gte=0"`
	Currency      money.Currency   `json:"moneda_origen"`
	Rate          *decimal.Decimal `json:"tasa_cambio"`
	Driver        Personnel        `json:"chofer"`
	Helper        Personnel        `json:"ayudante"`
	Facturas      []FacturaParams  `json:"facturas" validate:"dive"`
}

type FacturaParams struct {
	InvoiceNumber string     `json:"invoice_number" validate:"required"`
	ClientName    string     `json:"client_name" validate:"required"`
	LoadDate      time.Time  `json:"load_date" validate:"required"`
	DeliveryDate  *time.Time `json:"delivery_date"`
	StateDest     string     `json:"state_dest"`
	CityDest      string     `json:"city_dest"`
	WeightKg      *float64   `json:"weight_kg" validate:"omitempty,gte=0"`
	Observation   string     `json:"observation"`
	DriverID      *uuid.UUID `json:"driver_id"`
}

func (p FacturaParams) toFactura(fleteID uuid.UUID) *Factura {
	return &Factura{
		FleteID:       fleteID,
		InvoiceNumber: p.InvoiceNumber,
		ClientName:    p.ClientName,
		LoadDate:      p.LoadDate,
		DeliveryDate:  p.DeliveryDate,
		StateDest:     p.StateDest,
		CityDest:      p.CityDest,
		WeightKg:      p.WeightKg,
		Observation:   p.Observation,
		DriverID:      p.DriverID,
	}
}

// PersonnelFields returns the column names of a role's sub-ledger.
func PersonnelFields(role Role) (paid, paidAt, currency, rate, amount string) {
	r := string(role)
	return "pagado_" + r, "fecha_pago_" + r, "pago_moneda_" + r, "pago_tasa_cambio_" + r, "monto_pago_" + r
}

// Validate checks the cross-field rules of a complete flete: required
// header fields, the origin payment while Pagado, and each personnel
// payment marked as paid.
func Validate(f *Flete) validate.Errors {
	var errs validate.Errors

	if f.FONumber == "" {
		errs.Add("fo_number", validate.MsgRequired)
	}

	if f.ClientID == uuid.Nil {
		errs.Add("cliente_id", validate.MsgRequired)
	}

	if f.Destination == "" {
		errs.Add("destination", validate.MsgRequired)
	}

	if !f.Status.Valid() {
		errs.Add(FieldStatus, msgStatusInvalid)
	}

	if f.EstimatedCost != nil && *f.EstimatedCost < 0 {
		errs.Add("costo_aproximado", validate.MsgNegative)
	}

	if f.AmountPaid != nil && *f.AmountPaid < 0 {
		errs.Add(FieldAmountPaid, validate.MsgNegative)
	}

	if f.Status == StatusPaid {
		errs = append(errs, checkOriginPayment(f)...)
	}

	for _, role := range []Role{RoleDriver, RoleHelper} {
		errs = append(errs, validatePersonnel(f, role)...)
	}

	return errs
}

func validatePersonnel(f *Flete, role Role) validate.Errors {
	var errs validate.Errors

	p := f.Personnel(role)
	paidField, paidAtField, currencyField, rateField, amountField := PersonnelFields(role)

	if p.Amount != nil && *p.Amount < 0 {
		errs.Add(amountField, validate.MsgNegative)
	}

	currency := p.Currency
	if currency == "" {
		currency = money.USD
	}

	if !currency.Valid() {
		errs.Add(currencyField, validate.MsgCurrencyInvalid)
	}

	if !p.Paid {
		return errs
	}

	if f.Status == StatusInTransit {
		errs.Add(paidField, msgPersonnelInTransit)
	}

	if p.PaidAt == nil {
		errs.Add(paidAtField, validate.MsgPersonnelDateMissing)
	}

	validate.Rate(&errs, rateField, currency, p.Rate)

	return errs
}
