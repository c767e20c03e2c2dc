package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mariachi/shared/constant"
	"mariachi/shared/failure"
	"mariachi/shared/slot"
	"reflect"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	// report fields by their json name, which is what callers send
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	rules := map[string]val.Func{
		"empty": func(fl val.FieldLevel) bool { return fl.Field().IsZero() },
		"slot":  stringRule(slot.IsGridHour),
		"hour": stringRule(func(value string) bool {
			_, err := slot.Parse(value)

			return err == nil
		}),
		"date": stringRule(func(value string) bool {
			_, err := time.Parse(constant.DateOnlyFormat, value)

			return err == nil
		}),
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	return v
}

func stringRule(check func(string) bool) val.Func {
	return func(fl val.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)

		return ok && check(value)
	}
}

// Validate decodes a JSON body into data and validates it. Every failure is a 400.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

// ValidateVar checks a single value, such as a path or query parameter.
func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
