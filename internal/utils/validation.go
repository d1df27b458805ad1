package utils

import (
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/toyz/userregistry/internal/errors"
)

// Validator represents a validation function
type Validator[T any] func(T) error

// ValidatorChain runs validators in order and stops at the first failure
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add adds a validator to the chain
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain
func (vc *ValidatorChain[T]) Validate(value T) error {
	for _, validator := range vc.validators {
		if err := validator(value); err != nil {
			return err
		}
	}
	return nil
}

// Field lifts a validator on one field of T into a validator on T
func Field[T, F any](get func(T) F, validator Validator[F]) Validator[T] {
	return func(value T) error {
		return validator(get(value))
	}
}

// NotBlank rejects strings that are empty after trimming whitespace with
// the error reject builds from the value
func NotBlank[E error](reject func(string) E) Validator[string] {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return reject(value)
		}
		return nil
	}
}

// MatchesRegex rejects strings that do not match pattern with the error
// reject builds from the value
func MatchesRegex[E error](pattern string, reject func(string) E) Validator[string] {
	regex := regexp.MustCompile(pattern)
	return func(value string) error {
		if !regex.MatchString(value) {
			return reject(value)
		}
		return nil
	}
}

// IsOneOf validates that a value is one of the allowed values
func IsOneOf[T comparable](field string, allowed ...T) Validator[T] {
	return func(value T) error {
		for _, allowedValue := range allowed {
			if value == allowedValue {
				return nil
			}
		}
		return apperrors.NewValidationErrorWithValue(field, value, "one_of",
			fmt.Sprintf("%s must be one of: %v", field, allowed))
	}
}

// NonNegative rejects negative integers
func NonNegative(field string) Validator[int] {
	return func(value int) error {
		if value < 0 {
			return apperrors.NewValidationErrorWithValue(field, value, "non_negative",
				fmt.Sprintf("%s must not be negative", field))
		}
		return nil
	}
}

// InRange validates min <= value <= max
func InRange(field string, min, max int) Validator[int] {
	return func(value int) error {
		if value < min || value > max {
			return apperrors.NewValidationErrorWithValue(field, value, "range",
				fmt.Sprintf("%s must be between %d and %d", field, min, max))
		}
		return nil
	}
}
