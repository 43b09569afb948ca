package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structs = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Struct runs the `validate` tags of v and reports violations under the json field names.
func Struct(v any) Errors {
	err := structs.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Message: err.Error()}}
	}

	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out.Add(fieldPath(fe), message(fe))
	}

	return out
}

// fieldPath drops the struct type name from the namespace: "Params.facturas[0].client_name" -> "facturas[0].client_name".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}

	return path
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_with":
		return MsgRequired
	case "gte", "min":
		return "Debe ser ≥ " + fe.Param()
	case "gt":
		return "Debe ser > " + fe.Param()
	case "max", "lte":
		return "Debe ser ≤ " + fe.Param()
	}

	return "Valor no válido"
}
