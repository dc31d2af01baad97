package ports

import (
	"context"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
)

type SessionService interface {
	Login(ctx context.Context, username, password string) (*domain.User, error)
	Logout()
	CurrentUser() *domain.User
	HasRole(role domain.Role) bool
}

type PatientService interface {
	Create(ctx context.Context, principal *domain.User, patient domain.Patient) (*domain.Patient, error)
	Update(ctx context.Context, principal *domain.User, patient domain.Patient) (bool, error)
	Delete(ctx context.Context, principal *domain.User, patientID int) (bool, error)
	GetByID(ctx context.Context, patientID int) (*domain.Patient, error)
	ListAll(ctx context.Context) ([]domain.Patient, error)
	SearchByName(ctx context.Context, term string) ([]domain.Patient, error)
}

type DiseaseService interface {
	Create(ctx context.Context, principal *domain.User, disease domain.Disease) (*domain.Disease, error)
	ListAll(ctx context.Context) ([]domain.Disease, error)
	GetByID(ctx context.Context, diseaseID int) (*domain.Disease, error)
}

type DiagnosisService interface {
	AddToPatient(ctx context.Context, principal *domain.User, diagnosis domain.Diagnosis) (*domain.Diagnosis, error)
	ListForPatient(ctx context.Context, patientID int) ([]domain.DiagnosisRecord, error)
	RemoveFromPatient(ctx context.Context, principal *domain.User, diagnosisID int) (bool, error)
}
