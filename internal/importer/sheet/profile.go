package sheet

import "github.com/MrJamesThe3rd/fletes/internal/money"

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle is one amount column whose currency comes from CurrencyCol or Currency.
	amountSingle amountMode = iota
	// amountSplit is a bank statement with separate debit and credit columns. Only debits are expenses.
	amountSplit
)

// Profile describes the column layout of an accepted spreadsheet.
// Column names are compared after normalizeHeader.
type Profile struct {
	Name        string
	DateCol     string
	DescCol     string
	RefCol      string // Optional
	CategoryCol string // Optional
	CurrencyCol string // Optional; Currency is used when empty
	Currency    money.Currency
	AmountMode  amountMode
	AmountCol   string // used when AmountMode == amountSingle
	DebitCol    string // used when AmountMode == amountSplit
	CreditCol   string // used when AmountMode == amountSplit
	RateCol     string // Optional
	RateTypeCol string // Optional
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	if p.CurrencyCol != "" {
		cols = append(cols, p.CurrencyCol)
	}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

const (
	FormatPlanilla = "planilla"
	FormatBanco    = "banco"
)

var profiles = []Profile{
	{
		Name:        FormatPlanilla,
		DateCol:     "fecha",
		DescCol:     "descripcion",
		CategoryCol: "categoria",
		CurrencyCol: "moneda",
		AmountMode:  amountSingle,
		AmountCol:   "monto",
		RateCol:     "tasa",
		RateTypeCol: "tipo de tasa",
	},
	{
		Name:       FormatBanco,
		DateCol:    "fecha",
		DescCol:    "concepto",
		RefCol:     "referencia",
		Currency:   money.VES,
		AmountMode: amountSplit,
		DebitCol:   "cargo",
		CreditCol:  "abono",
	},
}

// Formats lists the accepted layout names.
func Formats() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}

	return names
}

func profileByName(name string) *Profile {
	for i := range profiles {
		if profiles[i].Name == name {
			return &profiles[i]
		}
	}

	return nil
}
