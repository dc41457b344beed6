package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	postalCodeRegex = regexp.MustCompile(`^[0-9]{6}$`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
)

// SanitizeString escapes HTML special characters and strips tags
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)
	return htmlTagRegex.ReplaceAllString(sanitized, "")
}

// ValidateEmail checks email format
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ValidateShippingAddress checks the fields a shipping snapshot needs
// before an order can be placed.
func ValidateShippingAddress(line1, city, state, country, postalCode string) FieldValidationErrors {
	var errs FieldValidationErrors

	if strings.TrimSpace(line1) == "" {
		errs = append(errs, FieldValidationError{Field: "line1", Message: "Address line is required"})
	}
	if strings.TrimSpace(city) == "" {
		errs = append(errs, FieldValidationError{Field: "city", Message: "City is required"})
	}
	if strings.TrimSpace(state) == "" {
		errs = append(errs, FieldValidationError{Field: "state", Message: "State is required"})
	}
	if strings.TrimSpace(country) == "" {
		errs = append(errs, FieldValidationError{Field: "country", Message: "Country is required"})
	}
	if !postalCodeRegex.MatchString(strings.TrimSpace(postalCode)) {
		errs = append(errs, FieldValidationError{Field: "postal_code", Message: "Postal code must be 6 digits"})
	}

	return errs
}
