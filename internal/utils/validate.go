package utils

import (
	"fmt"
	"strings"

	"gareddit/internal/config"
)

// FieldError is a caller-facing validation failure tied to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateUsername checks length and disallowed characters.
func ValidateUsername(username string) []FieldError {
	var errors []FieldError
	if len(username) < config.MinUsernameLength {
		errors = append(errors, FieldError{
			Field:   "username",
			Message: fmt.Sprintf("Username must be at least %d characters long.", config.MinUsernameLength),
		})
	}
	if strings.Contains(username, "@") {
		errors = append(errors, FieldError{
			Field:   "username",
			Message: "Username must not contain an @ symbol.",
		})
	}
	return errors
}

// ValidatePassword checks the minimum length. The field name is a parameter
// because the change-password flow reports against "newPassword".
func ValidatePassword(password, field string) []FieldError {
	var errors []FieldError
	if len(password) < config.MinPasswordLength {
		errors = append(errors, FieldError{
			Field:   field,
			Message: fmt.Sprintf("Password must be at least %d characters long.", config.MinPasswordLength),
		})
	}
	return errors
}

// ValidateEmail checks the email shape.
func ValidateEmail(email string) []FieldError {
	if !strings.Contains(email, "@") {
		return []FieldError{{Field: "email", Message: "Invalid email."}}
	}
	return nil
}

// ValidateRegister collects every applicable error before returning, so one
// bad submission reports all of its problems at once.
func ValidateRegister(username, email, password string) []FieldError {
	var errors []FieldError
	errors = append(errors, ValidateUsername(username)...)
	errors = append(errors, ValidatePassword(password, "password")...)
	errors = append(errors, ValidateEmail(email)...)
	return errors
}
