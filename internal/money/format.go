package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	usdPrinter = message.NewPrinter(language.AmericanEnglish)
	vesPrinter = message.NewPrinter(language.MustParse("es-VE"))
)

// Format renders cents for display: en-US grouping for USD, es-VE for VES.
func Format(cents int64, c Currency) string {
	value := FromCents(cents).InexactFloat64()

	if c == VES {
		return "Bs. " + vesPrinter.Sprintf("%.2f", value)
	}

	return "$" + usdPrinter.Sprintf("%.2f", value)
}
