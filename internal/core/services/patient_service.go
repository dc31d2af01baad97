package services

import (
	"context"
	"strings"
	"time"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

// PatientService validates and persists patient demographic records.
type PatientService struct {
	patientRepo ports.PatientRepository
}

var _ ports.PatientService = (*PatientService)(nil)

func NewPatientService(patientRepo ports.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// Create validates the patient and persists it, returning the record with
// its store-assigned id. The registration date is set here, once.
func (s *PatientService) Create(ctx context.Context, principal *domain.User, patient domain.Patient) (*domain.Patient, error) {
	if err := requireRole(principal, domain.RoleAdmin, domain.RoleDoctor, domain.RoleReceptionist); err != nil {
		return nil, err
	}
	if err := validatePatient(&patient); err != nil {
		return nil, err
	}

	if patient.RegistrationDate.IsZero() {
		patient.RegistrationDate = time.Now()
	}

	created, err := s.patientRepo.Save(ctx, patient)
	if err != nil {
		return nil, &domain.StorageError{Op: "save patient", Err: err}
	}
	return created, nil
}

// Update re-runs creation validation and reports whether a record with the
// patient's id was matched.
func (s *PatientService) Update(ctx context.Context, principal *domain.User, patient domain.Patient) (bool, error) {
	if err := requireRole(principal, domain.RoleAdmin, domain.RoleDoctor, domain.RoleReceptionist); err != nil {
		return false, err
	}
	if err := validatePatient(&patient); err != nil {
		return false, err
	}

	updated, err := s.patientRepo.Update(ctx, patient)
	if err != nil {
		return false, &domain.StorageError{Op: "update patient", Err: err}
	}
	return updated, nil
}

// Delete removes the patient row. Diagnosis rows are not cascaded.
func (s *PatientService) Delete(ctx context.Context, principal *domain.User, patientID int) (bool, error) {
	if err := requireRole(principal, domain.RoleAdmin); err != nil {
		return false, err
	}

	deleted, err := s.patientRepo.Delete(ctx, patientID)
	if err != nil {
		return false, &domain.StorageError{Op: "delete patient", Err: err}
	}
	return deleted, nil
}

// GetByID returns (nil, nil) when no patient has the id.
func (s *PatientService) GetByID(ctx context.Context, patientID int) (*domain.Patient, error) {
	patient, err := s.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		return nil, &domain.StorageError{Op: "find patient by id", Err: err}
	}
	return patient, nil
}

// ListAll returns every patient ordered by last name, then first name.
func (s *PatientService) ListAll(ctx context.Context) ([]domain.Patient, error) {
	patients, err := s.patientRepo.FindAll(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "list patients", Err: err}
	}
	return patients, nil
}

// SearchByName matches the term case-insensitively against first or last
// name. A blank term means no filter and behaves exactly like ListAll.
func (s *PatientService) SearchByName(ctx context.Context, term string) ([]domain.Patient, error) {
	if strings.TrimSpace(term) == "" {
		return s.ListAll(ctx)
	}

	patients, err := s.patientRepo.SearchByName(ctx, term)
	if err != nil {
		return nil, &domain.StorageError{Op: "search patients by name", Err: err}
	}
	return patients, nil
}
