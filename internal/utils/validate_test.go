package utils

import (
	"testing"
)

func hasFieldError(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateRegisterCollectsAllErrors(t *testing.T) {
	// Short username, short password and a bad email reported together.
	errs := ValidateRegister("ab", "not-an-email", "pw")
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(errs), errs)
	}
	if !hasFieldError(errs, "username") || !hasFieldError(errs, "password") || !hasFieldError(errs, "email") {
		t.Errorf("missing a field in %v", errs)
	}
}

func TestValidateRegisterAcceptsValidInput(t *testing.T) {
	if errs := ValidateRegister("alice", "alice@example.com", "hunter2"); len(errs) != 0 {
		t.Errorf("valid input produced errors: %v", errs)
	}
}

func TestValidateUsername(t *testing.T) {
	if errs := ValidateUsername("ab"); len(errs) != 1 {
		t.Errorf("2-char username: got %v, want one length error", errs)
	}
	if errs := ValidateUsername("a@b"); !hasFieldError(errs, "username") {
		t.Errorf("username with @ passed validation")
	}
	// Both problems at once.
	if errs := ValidateUsername("@"); len(errs) != 2 {
		t.Errorf("got %d errors for \"@\", want 2", len(errs))
	}
}

func TestValidatePasswordFieldName(t *testing.T) {
	errs := ValidatePassword("ab", "newPassword")
	if len(errs) != 1 || errs[0].Field != "newPassword" {
		t.Errorf("got %v, want one error on newPassword", errs)
	}
}
