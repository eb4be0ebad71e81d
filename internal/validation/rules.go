// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	apperrors "github.com/allisson/catalog/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
// The original validation.Errors stays reachable through errors.As so the
// HTTP layer can report per-field messages.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Printable validates that every rune is printable (no control characters).
var Printable = validation.NewStringRuleWithError(
	func(s string) bool {
		for _, r := range s {
			if !unicode.IsPrint(r) {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_printable", "must contain only printable characters"),
)

// HTTPURL validates an absolute http or https URL.
var HTTPURL = validation.NewStringRuleWithError(
	func(s string) bool {
		u, err := url.ParseRequestURI(s)
		if err != nil {
			return false
		}
		return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	},
	validation.NewError("validation_http_url", "must be a valid http or https URL"),
)

// Price validates a decimal.Decimal (or pointer to one) as a non-negative
// amount with at most two fractional digits that fits DECIMAL(10,2).
var Price = validation.By(func(value any) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	default:
		return validation.NewError("validation_price_type", "must be a number")
	}

	if d.IsNegative() {
		return validation.NewError("validation_price_min", "must be no less than 0")
	}
	if !d.Equal(d.Truncate(2)) {
		return validation.NewError("validation_price_scale", "must have at most 2 decimal places")
	}
	if d.GreaterThanOrEqual(maxPrice) {
		return validation.NewError("validation_price_max", "must be less than 100000000")
	}
	return nil
})

var maxPrice = decimal.New(1, 8)
