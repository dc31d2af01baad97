package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

// MockPatientRepository implements ports.PatientRepository for testing.
// It keeps rows in memory and mimics the store's ordering and matching rules
// so service tests can assert observable behavior, not SQL.
type MockPatientRepository struct {
	mu sync.Mutex

	nextID   int
	patients map[int]domain.Patient

	// Call tracking for verification
	SaveCalls         []domain.Patient
	UpdateCalls       []domain.Patient
	DeleteCalls       []int
	FindByIDCalls     []int
	FindAllCalls      int
	SearchByNameCalls []string

	// Error injection
	SaveError         error
	UpdateError       error
	DeleteError       error
	FindByIDError     error
	FindAllError      error
	SearchByNameError error
}

var _ ports.PatientRepository = (*MockPatientRepository)(nil)

func NewMockPatientRepository() *MockPatientRepository {
	return &MockPatientRepository{
		nextID:   1,
		patients: make(map[int]domain.Patient),
	}
}

// SeedPatient stores a patient, assigning an id when the record has none.
func (m *MockPatientRepository) SeedPatient(patient domain.Patient) domain.Patient {
	m.mu.Lock()
	defer m.mu.Unlock()
	if patient.ID == 0 {
		patient.ID = m.nextID
		m.nextID++
	} else if patient.ID >= m.nextID {
		m.nextID = patient.ID + 1
	}
	m.patients[patient.ID] = patient
	return patient
}

func (m *MockPatientRepository) Save(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls = append(m.SaveCalls, patient)

	if m.SaveError != nil {
		return nil, m.SaveError
	}

	patient.ID = m.nextID
	m.nextID++
	m.patients[patient.ID] = patient
	return &patient, nil
}

func (m *MockPatientRepository) Update(ctx context.Context, patient domain.Patient) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, patient)

	if m.UpdateError != nil {
		return false, m.UpdateError
	}

	existing, ok := m.patients[patient.ID]
	if !ok {
		return false, nil
	}
	patient.RegistrationDate = existing.RegistrationDate
	m.patients[patient.ID] = patient
	return true, nil
}

func (m *MockPatientRepository) Delete(ctx context.Context, patientID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, patientID)

	if m.DeleteError != nil {
		return false, m.DeleteError
	}

	if _, ok := m.patients[patientID]; !ok {
		return false, nil
	}
	delete(m.patients, patientID)
	return true, nil
}

func (m *MockPatientRepository) FindByID(ctx context.Context, patientID int) (*domain.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindByIDCalls = append(m.FindByIDCalls, patientID)

	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}

	patient, ok := m.patients[patientID]
	if !ok {
		return nil, nil
	}
	return &patient, nil
}

func (m *MockPatientRepository) FindAll(ctx context.Context) ([]domain.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindAllCalls++

	if m.FindAllError != nil {
		return nil, m.FindAllError
	}
	return m.sortedLocked(nil), nil
}

func (m *MockPatientRepository) SearchByName(ctx context.Context, term string) ([]domain.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SearchByNameCalls = append(m.SearchByNameCalls, term)

	if m.SearchByNameError != nil {
		return nil, m.SearchByNameError
	}

	needle := strings.ToLower(term)
	match := func(p domain.Patient) bool {
		return strings.Contains(strings.ToLower(p.FirstName), needle) ||
			strings.Contains(strings.ToLower(p.LastName), needle)
	}
	return m.sortedLocked(match), nil
}

// sortedLocked returns matching patients ordered by last name, first name.
func (m *MockPatientRepository) sortedLocked(match func(domain.Patient) bool) []domain.Patient {
	var result []domain.Patient
	for _, p := range m.patients {
		if match == nil || match(p) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LastName != result[j].LastName {
			return result[i].LastName < result[j].LastName
		}
		return result[i].FirstName < result[j].FirstName
	})
	return result
}
