package validation

import (
	"fmt"
	"regexp"
)

const FORMAT_US = "us"
const FORMAT_INTERNATIONAL = "international"

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var nonDigits = regexp.MustCompile(`\D`)

// ValidationError reports a single field failing a format rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func IsValidEmail(value string) bool {
	return emailRegex.MatchString(value)
}

// CleanDigits strips everything but digits from a value.
func CleanDigits(value string) string {
	return nonDigits.ReplaceAllString(value, "")
}

// ValidatePhone checks a phone value against its configured format and
// returns the digits-only form. US numbers are exactly 10 digits;
// international numbers 10 to 15.
func ValidatePhone(fieldName string, value string, format string) (string, error) {
	cleaned := CleanDigits(value)
	if format == FORMAT_INTERNATIONAL {
		if len(cleaned) < 10 || len(cleaned) > 15 {
			return "", ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("Invalid phone number format for field %q. International numbers must be 10-15 digits.", fieldName),
			}
		}
		return cleaned, nil
	}
	if len(cleaned) != 10 {
		return "", ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("Invalid phone number format for field %q. US numbers must be 10 digits.", fieldName),
		}
	}
	return cleaned, nil
}

// ValidateSSN checks a social security value and returns its digits-only
// form; it must be exactly 9 digits.
func ValidateSSN(fieldName string, value string) (string, error) {
	cleaned := CleanDigits(value)
	if len(cleaned) != 9 {
		return "", ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("Invalid SSN format for field %q. Must be 9 digits.", fieldName),
		}
	}
	return cleaned, nil
}

// ValidateEmail checks a value when present and enforces the required
// option when empty.
func ValidateEmail(fieldName string, value string, required bool) error {
	if value == "" {
		if required {
			return ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("Email is required for field %q.", fieldName),
			}
		}
		return nil
	}
	if !IsValidEmail(value) {
		return ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("Invalid email format for field %q. Please provide a valid email address.", fieldName),
		}
	}
	return nil
}
