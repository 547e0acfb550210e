package common

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError_CollectsAllFields(t *testing.T) {
	ve := NewValidationError()
	if !ve.Empty() {
		t.Fatalf("new ValidationError should be empty")
	}

	ve.Add("password", "too short")
	ve.Add("phone", "must be 10 digits")

	if ve.Empty() {
		t.Fatalf("expected non-empty after Add")
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(ve.Fields))
	}

	msg := ve.Error()
	if !strings.Contains(msg, "password") || !strings.Contains(msg, "phone") {
		t.Fatalf("Error() should mention every field: %q", msg)
	}
}

func TestValidationError_MatchesWithAs(t *testing.T) {
	ve := NewValidationError()
	ve.Add("email", "not a valid address")

	var err error = ve
	var got *ValidationError
	if !errors.As(err, &got) {
		t.Fatalf("errors.As failed to match *ValidationError")
	}
	if got.Fields["email"] != "not a valid address" {
		t.Fatalf("unexpected fields: %v", got.Fields)
	}
}
