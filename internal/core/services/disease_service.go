package services

import (
	"context"
	"strings"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

// DiseaseService manages the disease catalog. Entries are append-only
// reference data: there is no update or delete surface.
type DiseaseService struct {
	diseaseRepo ports.DiseaseRepository
}

var _ ports.DiseaseService = (*DiseaseService)(nil)

func NewDiseaseService(diseaseRepo ports.DiseaseRepository) *DiseaseService {
	return &DiseaseService{diseaseRepo: diseaseRepo}
}

func (s *DiseaseService) Create(ctx context.Context, principal *domain.User, disease domain.Disease) (*domain.Disease, error) {
	if err := requireRole(principal, domain.RoleAdmin, domain.RoleDoctor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(disease.Name) == "" {
		return nil, domain.NewValidationError("disease name is required")
	}

	created, err := s.diseaseRepo.Save(ctx, disease)
	if err != nil {
		return nil, &domain.StorageError{Op: "save disease", Err: err}
	}
	return created, nil
}

// ListAll returns the catalog ordered by name.
func (s *DiseaseService) ListAll(ctx context.Context) ([]domain.Disease, error) {
	diseases, err := s.diseaseRepo.FindAll(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "list diseases", Err: err}
	}
	return diseases, nil
}

// GetByID returns (nil, nil) when no disease has the id.
func (s *DiseaseService) GetByID(ctx context.Context, diseaseID int) (*domain.Disease, error) {
	disease, err := s.diseaseRepo.FindByID(ctx, diseaseID)
	if err != nil {
		return nil, &domain.StorageError{Op: "find disease by id", Err: err}
	}
	return disease, nil
}
