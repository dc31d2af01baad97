package ports

import (
	"context"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, userID int) error
}

type PatientRepository interface {
	// Save inserts the patient and returns it with the store-assigned id.
	Save(ctx context.Context, patient domain.Patient) (*domain.Patient, error)
	// Update reports whether a row with the patient's id was matched.
	Update(ctx context.Context, patient domain.Patient) (bool, error)
	// Delete reports whether a row existed.
	Delete(ctx context.Context, patientID int) (bool, error)
	// FindByID returns (nil, nil) when no row matches.
	FindByID(ctx context.Context, patientID int) (*domain.Patient, error)
	FindAll(ctx context.Context) ([]domain.Patient, error)
	SearchByName(ctx context.Context, term string) ([]domain.Patient, error)
}

type DiseaseRepository interface {
	Save(ctx context.Context, disease domain.Disease) (*domain.Disease, error)
	FindAll(ctx context.Context) ([]domain.Disease, error)
	// FindByID returns (nil, nil) when no row matches.
	FindByID(ctx context.Context, diseaseID int) (*domain.Disease, error)
}

type DiagnosisRepository interface {
	// Save inserts the diagnosis and, in the same transaction, an outbox
	// event carrying outboxPayload for the relay to publish.
	Save(ctx context.Context, diagnosis domain.Diagnosis, outboxPayload []byte) (*domain.Diagnosis, error)
	// FindByPatientID returns diagnoses joined with disease catalog fields,
	// most recent diagnosis first.
	FindByPatientID(ctx context.Context, patientID int) ([]domain.DiagnosisRecord, error)
	// Delete reports whether a row existed, writing outboxPayload when it did.
	Delete(ctx context.Context, diagnosisID int, outboxPayload []byte) (bool, error)
}
