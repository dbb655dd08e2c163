package utils

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct returns one message per violated constraint, sorted
// lexically so the result does not depend on field evaluation order.
// A field's `message` tag overrides the generic message for that field, and a
// `message_<tag>` tag (e.g. `message_required`) overrides it for one constraint.
func ValidateStruct(data any) []string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	t := reflect.TypeOf(data)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, messageFor(t, fe))
	}
	sort.Strings(msgs)

	return msgs
}

// FormatValidationErrors joins sorted messages into the single string
// returned to clients.
func FormatValidationErrors(msgs []string) string {
	return strings.Join(msgs, ",")
}

func messageFor(t reflect.Type, fe validator.FieldError) string {
	// dive errors are reported as Field[i]
	name := fe.StructField()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}

	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(name); ok {
			if msg := f.Tag.Get("message_" + fe.Tag()); msg != "" {
				return msg
			}
			if msg := f.Tag.Get("message"); msg != "" {
				return msg
			}
		}
	}

	return getErrorMessage(fe)
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		return fmt.Sprintf("%s minimum is %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s maximum is %s", err.Field(), err.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
	case "datetime":
		return fmt.Sprintf("%s must match %s", err.Field(), err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("%s must be one of: %s", err.Field(), options)
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}
