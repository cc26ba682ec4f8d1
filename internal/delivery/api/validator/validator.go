// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "oauthgate/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator validates bound request DTOs using struct tags.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a CustomValidator with required struct validation enabled.
func New() *CustomValidator {
	return &CustomValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate reports any failed rule as ErrValidationFailed, with the field errors kept as the cause.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithCause(err)
	}

	return nil
}
