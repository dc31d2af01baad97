package mocks

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
)

// NewTestUser builds an operator account whose password hash matches the
// given plaintext, for seeding MockUserRepository.
func NewTestUser(id int, username, password string, role domain.Role) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic("bcrypt hash: " + err.Error())
	}
	return &domain.User{
		ID:           id,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
}

// NewTestPatient builds a valid patient record for test setup.
func NewTestPatient(firstName, lastName string) domain.Patient {
	return domain.Patient{
		FirstName:        firstName,
		LastName:         lastName,
		DateOfBirth:      time.Date(1985, time.March, 14, 0, 0, 0, 0, time.UTC),
		Gender:           "Female",
		ContactNumber:    "123-456-7890",
		Email:            "patient@example.com",
		Address:          "12 Harbour Street",
		RegistrationDate: time.Now(),
	}
}
