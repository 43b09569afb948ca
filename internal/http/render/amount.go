package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/MrJamesThe3rd/fletes/internal/money"
)

// Amount is money in cents that travels as a two-decimal number,
// so 1234.5 on the wire is 123450 in the domain.
type Amount int64

var amountType = reflect.TypeFor[Amount]()

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(money.FromCents(int64(a)).StringFixed(2)), nil
}

// UnmarshalJSON accepts a number or a string such as "1.234,56".
func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	s := string(bytes.Trim(b, `"`))

	d, err := money.ParseDecimal(s)
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", b, err)
	}

	cents, err := money.ToCents(d)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "number " + s, Type: amountType}
	}

	*a = Amount(cents)

	return nil
}

// Cents converts an optional wire amount to the domain representation.
func Cents(a *Amount) *int64 {
	return (*int64)(a)
}

// FromCents converts an optional domain amount for the wire.
func FromCents(c *int64) *Amount {
	return (*Amount)(c)
}
