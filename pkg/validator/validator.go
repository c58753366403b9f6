// Package validator wraps go-playground/validator with the error
// shape the handlers return to clients.
package validator

import (
	"fmt"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"

	apperrors "github.com/Michael4-fab/MedicalLabSimulator/pkg/errors"
)

// Validator validates request structs against their validate tags.
type Validator struct {
	v *validatorv10.Validate
}

func New() *Validator {
	return &Validator{v: validatorv10.New()}
}

// Validate returns a validation AppError describing every failed field,
// or nil when obj passes.
func (va *Validator) Validate(obj interface{}) error {
	err := va.v.Struct(obj)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		return apperrors.NewValidation("invalid request", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return apperrors.NewValidation(strings.Join(msgs, "; "), err)
}

func describe(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
