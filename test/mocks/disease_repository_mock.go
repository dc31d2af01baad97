package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

// MockDiseaseRepository implements ports.DiseaseRepository for testing.
type MockDiseaseRepository struct {
	mu sync.Mutex

	nextID   int
	diseases map[int]domain.Disease

	// Call tracking for verification
	SaveCalls     []domain.Disease
	FindAllCalls  int
	FindByIDCalls []int

	// Error injection
	SaveError     error
	FindAllError  error
	FindByIDError error
}

var _ ports.DiseaseRepository = (*MockDiseaseRepository)(nil)

func NewMockDiseaseRepository() *MockDiseaseRepository {
	return &MockDiseaseRepository{
		nextID:   1,
		diseases: make(map[int]domain.Disease),
	}
}

func (m *MockDiseaseRepository) SeedDisease(disease domain.Disease) domain.Disease {
	m.mu.Lock()
	defer m.mu.Unlock()
	if disease.ID == 0 {
		disease.ID = m.nextID
		m.nextID++
	} else if disease.ID >= m.nextID {
		m.nextID = disease.ID + 1
	}
	m.diseases[disease.ID] = disease
	return disease
}

func (m *MockDiseaseRepository) Save(ctx context.Context, disease domain.Disease) (*domain.Disease, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls = append(m.SaveCalls, disease)

	if m.SaveError != nil {
		return nil, m.SaveError
	}

	disease.ID = m.nextID
	m.nextID++
	m.diseases[disease.ID] = disease
	return &disease, nil
}

func (m *MockDiseaseRepository) FindAll(ctx context.Context) ([]domain.Disease, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindAllCalls++

	if m.FindAllError != nil {
		return nil, m.FindAllError
	}

	var result []domain.Disease
	for _, d := range m.diseases {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *MockDiseaseRepository) FindByID(ctx context.Context, diseaseID int) (*domain.Disease, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindByIDCalls = append(m.FindByIDCalls, diseaseID)

	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}

	disease, ok := m.diseases[diseaseID]
	if !ok {
		return nil, nil
	}
	return &disease, nil
}
