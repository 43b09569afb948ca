package flete

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/flete"
	"github.com/MrJamesThe3rd/fletes/internal/http/render"
	"github.com/MrJamesThe3rd/fletes/internal/money"
)

type personnelRequest struct {
	Amount   *render.Amount   `json:"monto"`
	Paid     bool             `json:"pagado"`
	PaidAt   *render.Date     `json:"fecha_pago"`
	Currency money.Currency   `json:"moneda"`
	Rate     *decimal.Decimal `json:"tasa_cambio"`
}

func (p personnelRequest) toPersonnel() flete.Personnel {
	return flete.Personnel{
		Amount:   render.Cents(p.Amount),
		Paid:     p.Paid,
		PaidAt:   render.TimePtr(p.PaidAt),
		Currency: p.Currency,
		Rate:     p.Rate,
	}
}

type facturaRequest struct {
	InvoiceNumber string       `json:"invoice_number"`
	ClientName    string       `json:"client_name"`
	LoadDate      render.Date  `json:"load_date"`
	DeliveryDate  *render.Date `json:"delivery_date"`
	StateDest     string       `json:"state_dest"`
	CityDest      string       `json:"city_dest"`
	WeightKg      *float64     `json:"weight_kg"`
	Observation   string       `json:"observation"`
	DriverID      *uuid.UUID   `json:"driver_id"`
}

func (f facturaRequest) toParams() flete.FacturaParams {
	return flete.FacturaParams{
		InvoiceNumber: f.InvoiceNumber,
		ClientName:    f.ClientName,
		LoadDate:      f.LoadDate.Time(),
		DeliveryDate:  render.TimePtr(f.DeliveryDate),
		StateDest:     f.StateDest,
		CityDest:      f.CityDest,
		WeightKg:      f.WeightKg,
		Observation:   f.Observation,
		DriverID:      f.DriverID,
	}
}

type fleteRequest struct {
	FONumber      string           `json:"fo_number"`
	DriverID      *uuid.UUID       `json:"driver_id"`
	ClientID      uuid.UUID        `json:"cliente_id"`
	VehicleID     *uuid.UUID       `json:"vehicle_id"`
	Status        flete.Status     `json:"status"`
	Destination   string           `json:"destination"`
	EstimatedCost *render.Amount   `json:"costo_aproximado"`
	PaidAt        *render.Date     `json:"pago_fecha"`
	AmountPaid    *render.Amount   `json:"monto_pagado_origen"`
	Currency      money.Currency   `json:"moneda_origen"`
	Rate          *decimal.Decimal `json:"tasa_cambio"`
	Driver        personnelRequest `json:"chofer"`
	Helper        personnelRequest `json:"ayudante"`
	Facturas      []facturaRequest `json:"facturas"`
}

func (f fleteRequest) toParams() flete.Params {
	p := flete.Params{
		FONumber:      f.FONumber,
		DriverID:      f.DriverID,
		ClientID:      f.ClientID,
		VehicleID:     f.VehicleID,
		Status:        f.Status,
		Destination:   f.Destination,
		EstimatedCost: render.Cents(f.EstimatedCost),
		PaidAt:        render.TimePtr(f.PaidAt),
		AmountPaid:    render.Cents(f.AmountPaid),
		Currency:      f.Currency,
		Rate:          f.Rate,
		Driver:        f.Driver.toPersonnel(),
		Helper:        f.Helper.toPersonnel(),
	}

	for _, fa := range f.Facturas {
		p.Facturas = append(p.Facturas, fa.toParams())
	}

	return p
}

type statusRequest struct {
	Status     flete.Status     `json:"status"`
	PaidAt     *render.Date     `json:"pago_fecha"`
	AmountPaid *render.Amount   `json:"monto_pagado_origen"`
	Currency   money.Currency   `json:"moneda_origen"`
	Rate       *decimal.Decimal `json:"tasa_cambio"`
}

func (s statusRequest) toPayment() flete.OriginPayment {
	return flete.OriginPayment{
		PaidAt:     render.TimePtr(s.PaidAt),
		AmountPaid: render.Cents(s.AmountPaid),
		Currency:   s.Currency,
		Rate:       s.Rate,
	}
}

type personnelPaymentRequest struct {
	Amount   *render.Amount   `json:"monto"`
	PaidAt   render.Date      `json:"fecha_pago"`
	Currency money.Currency   `json:"moneda"`
	Rate     *decimal.Decimal `json:"tasa_cambio"`
}

func (p personnelPaymentRequest) toPayment() flete.PersonnelPayment {
	return flete.PersonnelPayment{
		Amount:   render.Cents(p.Amount),
		PaidAt:   p.PaidAt.Time(),
		Currency: p.Currency,
		Rate:     p.Rate,
	}
}
