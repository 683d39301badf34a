// Package validate wraps go-playground/validator with message rendering in
// the "The {field} field ..." style the API exposes to clients.
package validate

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/rahmatd/contactbook/internal/apperror"
)

// Validator validates request payload structs against their `validate` tags
// and converts failures into field-keyed apperror values.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Key error messages by the json field name, not the Go field name,
	// so "FirstName" surfaces as "firstName" in the error envelope.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{v: v}
}

// Struct validates req. On failure it returns an *apperror.AppError carrying
// one message list per offending field; any other error is returned as-is.
func (val *Validator) Struct(req any) error {
	err := val.v.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], message(fe))
	}
	return apperror.ValidationFields(fields)
}

// message renders one failed rule as a client-facing sentence.
func message(fe validator.FieldError) string {
	field := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

// humanize splits a camelCase json name into lower-case words:
// "firstName" → "first name", "postalCode" → "postal code".
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
