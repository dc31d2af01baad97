package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

// MockDiagnosisRepository implements ports.DiagnosisRepository for testing.
// The read view is enriched from a companion MockDiseaseRepository when one
// is attached, mirroring the store's query-time join.
type MockDiagnosisRepository struct {
	mu sync.Mutex

	nextID    int
	diagnoses map[int]domain.Diagnosis
	catalog   *MockDiseaseRepository

	// Call tracking for verification; payloads prove the audit event was
	// handed to the store together with the row change.
	SaveCalls            []domain.Diagnosis
	SavePayloads         [][]byte
	FindByPatientIDCalls []int
	DeleteCalls          []int
	DeletePayloads       [][]byte

	// Error injection
	SaveError            error
	FindByPatientIDError error
	DeleteError          error
}

var _ ports.DiagnosisRepository = (*MockDiagnosisRepository)(nil)

func NewMockDiagnosisRepository(catalog *MockDiseaseRepository) *MockDiagnosisRepository {
	return &MockDiagnosisRepository{
		nextID:    1,
		diagnoses: make(map[int]domain.Diagnosis),
		catalog:   catalog,
	}
}

func (m *MockDiagnosisRepository) Save(ctx context.Context, diagnosis domain.Diagnosis, outboxPayload []byte) (*domain.Diagnosis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls = append(m.SaveCalls, diagnosis)
	m.SavePayloads = append(m.SavePayloads, outboxPayload)

	if m.SaveError != nil {
		return nil, m.SaveError
	}

	diagnosis.ID = m.nextID
	m.nextID++
	m.diagnoses[diagnosis.ID] = diagnosis
	return &diagnosis, nil
}

func (m *MockDiagnosisRepository) FindByPatientID(ctx context.Context, patientID int) ([]domain.DiagnosisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindByPatientIDCalls = append(m.FindByPatientIDCalls, patientID)

	if m.FindByPatientIDError != nil {
		return nil, m.FindByPatientIDError
	}

	var records []domain.DiagnosisRecord
	for _, d := range m.diagnoses {
		if d.PatientID != patientID {
			continue
		}
		rec := domain.DiagnosisRecord{Diagnosis: d}
		if m.catalog != nil {
			if disease, _ := m.catalog.FindByID(ctx, d.DiseaseID); disease != nil {
				rec.DiseaseName = disease.Name
				rec.DiseaseDescription = disease.Description
				rec.DiseaseSymptoms = disease.Symptoms
				rec.DiseaseTreatment = disease.Treatment
			}
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].DiagnosisDate.After(records[j].DiagnosisDate)
	})
	return records, nil
}

func (m *MockDiagnosisRepository) Delete(ctx context.Context, diagnosisID int, outboxPayload []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, diagnosisID)

	if m.DeleteError != nil {
		return false, m.DeleteError
	}

	if _, ok := m.diagnoses[diagnosisID]; !ok {
		return false, nil
	}
	delete(m.diagnoses, diagnosisID)
	m.DeletePayloads = append(m.DeletePayloads, outboxPayload)
	return true, nil
}
