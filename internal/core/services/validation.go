package services

import (
	"regexp"
	"strings"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
)

var (
	phoneDashed = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	phoneParens = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
	phoneBare   = regexp.MustCompile(`^\d{10}$`)
	emailShape  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// validatePatient checks the required fields in a fixed order and reports the
// first violation. Contact number and email are optional; when supplied they
// must match the accepted formats. Address is always optional.
func validatePatient(p *domain.Patient) error {
	if strings.TrimSpace(p.FirstName) == "" {
		return domain.NewValidationError("first name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return domain.NewValidationError("last name is required")
	}
	if p.DateOfBirth.IsZero() {
		return domain.NewValidationError("date of birth is required")
	}
	if strings.TrimSpace(p.Gender) == "" {
		return domain.NewValidationError("gender is required")
	}
	if phone := strings.TrimSpace(p.ContactNumber); phone != "" && !isValidPhoneNumber(phone) {
		return domain.NewValidationError("invalid contact number format")
	}
	if email := strings.TrimSpace(p.Email); email != "" && !isValidEmail(email) {
		return domain.NewValidationError("invalid email format")
	}
	return nil
}

func isValidPhoneNumber(phone string) bool {
	return phoneDashed.MatchString(phone) ||
		phoneParens.MatchString(phone) ||
		phoneBare.MatchString(phone)
}

func isValidEmail(email string) bool {
	return emailShape.MatchString(email)
}
