package flete

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fletes/internal/flete"
	"github.com/MrJamesThe3rd/fletes/internal/http/render"
	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/page"
)

type personnelResponse struct {
	Amount   *render.Amount   `json:"monto"`
	Paid     bool             `json:"pagado"`
	PaidAt   *render.Date     `json:"fecha_pago"`
	Currency money.Currency   `json:"moneda"`
	Rate     *decimal.Decimal `json:"tasa_cambio"`
}

type facturaResponse struct {
	ID            uuid.UUID    `json:"id"`
	FleteID       uuid.UUID    `json:"flete_id"`
	InvoiceNumber string       `json:"invoice_number"`
	ClientName    string       `json:"client_name"`
	LoadDate      render.Date  `json:"load_date"`
	DeliveryDate  *render.Date `json:"delivery_date"`
	StateDest     string       `json:"state_dest"`
	CityDest      string       `json:"city_dest"`
	WeightKg      *float64     `json:"weight_kg"`
	Observation   string       `json:"observation"`
	DriverID      *uuid.UUID   `json:"driver_id"`
	CreatedAt     time.Time    `json:"created_at"`
}

type fleteResponse struct {
	ID            uuid.UUID         `json:"id"`
	FONumber      string            `json:"fo_number"`
	DriverID      *uuid.UUID        `json:"driver_id"`
	ClientID      uuid.UUID         `json:"cliente_id"`
	VehicleID     *uuid.UUID        `json:"vehicle_id"`
	Status        flete.Status      `json:"status"`
	Destination   string            `json:"destination"`
	EstimatedCost *render.Amount    `json:"costo_aproximado"`
	PaidAt        *render.Date      `json:"pago_fecha"`
	AmountPaid    *render.Amount    `json:"monto_pagado_origen"`
	Currency      money.Currency    `json:"moneda_origen"`
	Rate          *decimal.Decimal  `json:"tasa_cambio"`
	AmountPaidUSD *render.Amount    `json:"monto_pagado_usd"`
	AmountPaidVES *render.Amount    `json:"monto_pagado_ves"`
	Driver        personnelResponse `json:"chofer"`
	Helper        personnelResponse `json:"ayudante"`
	Facturas      []facturaResponse `json:"facturas,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     *time.Time        `json:"updated_at,omitempty"`
}

func toPersonnelResponse(p flete.Personnel) personnelResponse {
	return personnelResponse{
		Amount:   render.FromCents(p.Amount),
		Paid:     p.Paid,
		PaidAt:   render.DatePtr(p.PaidAt),
		Currency: p.Currency,
		Rate:     p.Rate,
	}
}

func toFacturaResponse(fa *flete.Factura) facturaResponse {
	return facturaResponse{
		ID:            fa.ID,
		FleteID:       fa.FleteID,
		InvoiceNumber: fa.InvoiceNumber,
		ClientName:    fa.ClientName,
		LoadDate:      render.Date(fa.LoadDate),
		DeliveryDate:  render.DatePtr(fa.DeliveryDate),
		StateDest:     fa.StateDest,
		CityDest:      fa.CityDest,
		WeightKg:      fa.WeightKg,
		Observation:   fa.Observation,
		DriverID:      fa.DriverID,
		CreatedAt:     fa.CreatedAt,
	}
}

func toResponse(f *flete.Flete) fleteResponse {
	resp := fleteResponse{
		ID:            f.ID,
		FONumber:      f.FONumber,
		DriverID:      f.DriverID,
		ClientID:      f.ClientID,
		VehicleID:     f.VehicleID,
		Status:        f.Status,
		Destination:   f.Destination,
		EstimatedCost: render.FromCents(f.EstimatedCost),
		PaidAt:        render.DatePtr(f.PaidAt),
		AmountPaid:    render.FromCents(f.AmountPaid),
		Currency:      f.Currency,
		Rate:          f.Rate,
		AmountPaidUSD: render.FromCents(f.AmountPaidUSD),
		AmountPaidVES: render.FromCents(f.AmountPaidVES),
		Driver:        toPersonnelResponse(f.Driver),
		Helper:        toPersonnelResponse(f.Helper),
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}

	for _, fa := range f.Facturas {
		resp.Facturas = append(resp.Facturas, toFacturaResponse(fa))
	}

	return resp
}

func toPageResponse(res page.Result[*flete.Flete]) page.Result[fleteResponse] {
	items := make([]fleteResponse, len(res.Items))
	for i, f := range res.Items {
		items[i] = toResponse(f)
	}

	return page.Result[fleteResponse]{Items: items, Total: res.Total, Page: res.Page, PerPage: res.PerPage}
}
