package services

import (
	"testing"
	"time"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
)

func TestIsValidPhoneNumber(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"123-456-7890", true},
		{"(123) 456-7890", true},
		{"1234567890", true},
		{"12345", false},
		{"123-45-67890", false},
		{"12345678901", false},
		{"abc-def-ghij", false},
	}

	for _, tt := range tests {
		if got := isValidPhoneNumber(tt.phone); got != tt.want {
			t.Errorf("isValidPhoneNumber(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a.b@example.com", true},
		{"user+tag@sub.example.org", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		if got := isValidEmail(tt.email); got != tt.want {
			t.Errorf("isValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidatePatient_FirstViolationWins(t *testing.T) {
	// Both first name and gender are missing; the first check in order is
	// the one that must be reported.
	p := domain.Patient{
		LastName:    "Cruz",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	err := validatePatient(&p)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if err.Error() != "first name is required" {
		t.Errorf("expected first violation in order, got %q", err.Error())
	}
}

func TestValidatePatient_WhitespaceOnlyFieldsRejected(t *testing.T) {
	p := domain.Patient{
		FirstName:   "   ",
		LastName:    "Cruz",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:      "Female",
	}

	if err := validatePatient(&p); err == nil {
		t.Error("whitespace-only first name should fail validation")
	}
}

func TestValidatePatient_OptionalFieldsMayBeEmpty(t *testing.T) {
	p := domain.Patient{
		FirstName:   "Ana",
		LastName:    "Cruz",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:      "Female",
	}

	if err := validatePatient(&p); err != nil {
		t.Errorf("patient with only required fields should pass, got %v", err)
	}
}
