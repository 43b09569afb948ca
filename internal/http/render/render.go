// Package render holds the request decoding and response writing shared by the API handlers.
package render

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/fletes/internal/debt"
	"github.com/MrJamesThe3rd/fletes/internal/expense"
	"github.com/MrJamesThe3rd/fletes/internal/flete"
	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/rates"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
	"github.com/MrJamesThe3rd/fletes/internal/vehicle"
)

var notFound = []error{
	debt.ErrNotFound,
	debt.ErrPaymentNotFound,
	expense.ErrNotFound,
	flete.ErrNotFound,
	flete.ErrFacturaNotFound,
	vehicle.ErrNotFound,
}

type errorsResponse struct {
	Errors validate.Errors `json:"errors"`
}

type messageResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func Text(w http.ResponseWriter, r *http.Request, status int, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write([]byte(s)); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// BadRequest answers 400 for input that could not be read at all.
func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	JSON(w, r, http.StatusBadRequest, messageResponse{Error: msg})
}

// Error maps err to a status code. Field violations are listed so the client
// can attach them to form inputs; anything unrecognised is logged and hidden.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var (
		errs    validate.Errors
		rateErr *money.InvalidRateError
	)

	switch {
	case errors.As(err, &errs):
		JSON(w, r, http.StatusUnprocessableEntity, errorsResponse{Errors: errs})
	case errors.As(err, &rateErr):
		JSON(w, r, http.StatusUnprocessableEntity, errorsResponse{Errors: validate.Errors{
			{Field: validate.FieldRate, Message: validate.MsgRatePositive},
		}})
	case errors.Is(err, money.ErrAmountRange):
		JSON(w, r, http.StatusUnprocessableEntity, errorsResponse{Errors: validate.Errors{
			{Field: validate.FieldRate, Message: validate.MsgConversionRange},
		}})
	case isNotFound(err):
		JSON(w, r, http.StatusNotFound, messageResponse{Error: err.Error()})
	case errors.Is(err, rates.ErrFetch):
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("rate source unavailable")
		JSON(w, r, http.StatusBadGateway, messageResponse{Error: "exchange rate source unavailable"})
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		JSON(w, r, http.StatusInternalServerError, messageResponse{Error: "internal error"})
	}
}

func isNotFound(err error) bool {
	for _, target := range notFound {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// Decode reads a JSON body into v, rejecting unknown fields. An amount too
// large to hold in cents comes back as validate.Errors on its field.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(v)

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Type == amountType && typeErr.Field != "" {
		return validate.Errors{{Field: typeErr.Field, Message: validate.MsgAmountRange}}
	}

	return err
}

// DecodeError answers a Decode failure: 422 for field violations, 400 otherwise.
func DecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var errs validate.Errors
	if errors.As(err, &errs) {
		Error(w, r, errs)
		return
	}

	BadRequest(w, r, "invalid request body: "+err.Error())
}
