package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

// DiagnosisService manages diagnosis episodes linking patients to diseases.
// Every recorded or removed episode leaves an audit event in the outbox,
// written in the same transaction as the row change.
type DiagnosisService struct {
	diagnosisRepo ports.DiagnosisRepository
}

var _ ports.DiagnosisService = (*DiagnosisService)(nil)

func NewDiagnosisService(diagnosisRepo ports.DiagnosisRepository) *DiagnosisService {
	return &DiagnosisService{diagnosisRepo: diagnosisRepo}
}

// AddToPatient records a new diagnosis episode. The diagnosis date defaults
// to now when the caller leaves it unset.
func (s *DiagnosisService) AddToPatient(ctx context.Context, principal *domain.User, diagnosis domain.Diagnosis) (*domain.Diagnosis, error) {
	if err := requireRole(principal, domain.RoleAdmin, domain.RoleDoctor); err != nil {
		return nil, err
	}

	if diagnosis.DiagnosisDate.IsZero() {
		diagnosis.DiagnosisDate = time.Now()
	}

	payload, err := json.Marshal(ports.DiagnosisEvent{
		PatientID:     diagnosis.PatientID,
		DiseaseID:     diagnosis.DiseaseID,
		DiagnosisDate: diagnosis.DiagnosisDate,
		Status:        diagnosis.Status,
		RecordedBy:    principal.Username,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.diagnosisRepo.Save(ctx, diagnosis, payload)
	if err != nil {
		return nil, &domain.StorageError{Op: "save diagnosis", Err: err}
	}
	return created, nil
}

// ListForPatient returns the patient's diagnosis episodes enriched with the
// referenced disease's catalog fields, most recent diagnosis first.
func (s *DiagnosisService) ListForPatient(ctx context.Context, patientID int) ([]domain.DiagnosisRecord, error) {
	records, err := s.diagnosisRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, &domain.StorageError{Op: "list diagnoses for patient", Err: err}
	}
	return records, nil
}

// RemoveFromPatient deletes one diagnosis episode and reports whether it
// existed. The patient and disease rows are untouched.
func (s *DiagnosisService) RemoveFromPatient(ctx context.Context, principal *domain.User, diagnosisID int) (bool, error) {
	if err := requireRole(principal, domain.RoleAdmin, domain.RoleDoctor); err != nil {
		return false, err
	}

	payload, err := json.Marshal(ports.DiagnosisEvent{
		DiagnosisID: diagnosisID,
		RecordedBy:  principal.Username,
	})
	if err != nil {
		return false, err
	}

	removed, err := s.diagnosisRepo.Delete(ctx, diagnosisID, payload)
	if err != nil {
		return false, &domain.StorageError{Op: "delete diagnosis", Err: err}
	}
	return removed, nil
}
