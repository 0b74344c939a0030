package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/leqihan/fcc-exercise-tracker/internal/error_values"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("ymd_date", func(fl validator.FieldLevel) bool {
			return IsValidDate(fl.Field().String())
		})
	})
}

// validationError folds validator field errors into one ErrValidation.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		joined := make([]error, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			joined = append(joined, fieldErr)
		}
		return fmt.Errorf("%w: %w", errorvalues.ErrValidation, errors.Join(joined...))
	}
	return errors.New("validation unexpected error: " + err.Error())
}
