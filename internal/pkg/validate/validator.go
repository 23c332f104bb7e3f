// Package validate wraps go-playground/validator with the store's rules and
// turns field errors into messages fit for a terminal.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/s2k/videogame-store/internal/core/domain"
)

// Validator checks tagged input structs. Failures wrap domain.ErrInvalidInput.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the notblank, trimmed and genre rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return strings.ToLower(f.Name)
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == strings.TrimSpace(s)
	})
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return domain.Genre(fl.Field().String()).Valid()
	})
	return &Validator{v: v}
}

// Struct validates i against its `validate` tags.
func (ev *Validator) Struct(i any) error {
	return ev.wrap(ev.v.Struct(i), "")
}

// Var validates a single value; label names it in the message.
func (ev *Validator) Var(label string, value any, tag string) error {
	return ev.wrap(ev.v.Var(value, tag), label)
}

func (ev *Validator) wrap(err error, label string) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe, label))
		}
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError, label string) string {
	field := fe.Field()
	if field == "" {
		field = label
	}
	switch fe.Tag() {
	case "required", "notblank":
		return field + " cannot be empty"
	case "number":
		return field + " must contain digits only"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "excludes":
		return fmt.Sprintf("%s must not contain %q", field, fe.Param())
	case "trimmed":
		return field + " must not start or end with spaces"
	case "genre":
		return field + " does not exist in our list"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
