package expense

import (
	"net/http"

	"github.com/MrJamesThe3rd/fletes/internal/expense"
	"github.com/MrJamesThe3rd/fletes/internal/http/render"
	"github.com/MrJamesThe3rd/fletes/internal/money"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

// ParseFilter reads ?category=, ?currency=, ?tipo_tasa= (both repeatable),
// ?from=, ?to=, ?flete_id= and paging.
func ParseFilter(r *http.Request) (expense.ListFilter, error) {
	q := r.URL.Query()

	filter := expense.ListFilter{Page: render.PageRequest(r)}

	var errs validate.Errors

	if s := q.Get("category"); s != "" {
		c, ok := expense.ParseCategory(s)
		if !ok {
			errs.Add("category", "Categoría no válida")
		}

		filter.Category = &c
	}

	for _, s := range q["currency"] {
		c, err := money.ParseCurrency(s)
		if err != nil {
			errs.Add(validate.FieldCurrency, validate.MsgCurrencyInvalid)
			continue
		}

		filter.Currencies = append(filter.Currencies, c)
	}

	for _, s := range q["tipo_tasa"] {
		t, err := money.ParseRateType(s)
		if err != nil {
			errs.Add(validate.FieldRateType, validate.MsgRateTypeInvalid)
			continue
		}

		filter.RateTypes = append(filter.RateTypes, t)
	}

	var err error

	if filter.From, err = render.DateParam(r, "from"); err != nil {
		errs.Add("from", err.Error())
	}

	if filter.To, err = render.DateParam(r, "to"); err != nil {
		errs.Add("to", err.Error())
	}

	if filter.FleteID, err = render.UUIDParam(r, "flete_id"); err != nil {
		errs.Add("flete_id", err.Error())
	}

	return filter, errs.OrNil()
}
