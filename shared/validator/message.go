package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be at least {param}",
	"max":      "{field} must be at most {param}",
	"oneof":    "{field} must be one of {param}",
	"email":    "{field} must be a valid email address",
	"slot":     "{field} must be one of the bookable hours 08:00-23:00 or 00:00",
	"hour":     "{field} must be a whole hour in HH:00 format",
	"date":     "{field} must be a date in YYYY-MM-DD format",
	"dive":     "{field} contains an invalid value",
}

// message renders the first validation failure that has a known template.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrors {
		template, ok := messages[fieldErr.Tag()]
		if !ok {
			continue
		}

		field := fieldErr.Field()
		if field == "" {
			field = "value"
		}

		return strings.NewReplacer("{field}", field, "{param}", fieldErr.Param()).Replace(template)
	}

	return fieldErrors.Error()
}
