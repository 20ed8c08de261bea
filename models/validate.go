package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field names as they appear on the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes a single schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Validate checks a creation payload against its schema and returns every
// offending field, not just the first.
func Validate(in any) []FieldError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Rule: "invalid", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s failed the %q rule", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s failed the %q rule (%s)", fe.Field(), fe.Tag(), fe.Param())
		}
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag(), Message: msg})
	}
	return out
}
