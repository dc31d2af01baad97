package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
	"github.com/stavrosm/city-clinic/records-service/internal/core/services"
	"github.com/stavrosm/city-clinic/records-service/test/mocks"
)

func newDiagnosisFixture() (*mocks.MockDiseaseRepository, *mocks.MockDiagnosisRepository, *services.DiagnosisService) {
	catalog := mocks.NewMockDiseaseRepository()
	mockRepo := mocks.NewMockDiagnosisRepository(catalog)
	return catalog, mockRepo, services.NewDiagnosisService(mockRepo)
}

func TestDiagnosisService_AddToPatient(t *testing.T) {
	_, mockRepo, svc := newDiagnosisFixture()

	when := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	created, err := svc.AddToPatient(context.Background(), asDoctor, domain.Diagnosis{
		PatientID:     1,
		DiseaseID:     2,
		DiagnosisDate: when,
		Status:        "active",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == 0 {
		t.Error("created diagnosis must carry the assigned id")
	}
	if !created.DiagnosisDate.Equal(when) {
		t.Errorf("diagnosis date changed: got %v, want %v", created.DiagnosisDate, when)
	}

	if len(mockRepo.SavePayloads) != 1 {
		t.Fatalf("expected 1 outbox payload, got %d", len(mockRepo.SavePayloads))
	}
	var evt ports.DiagnosisEvent
	if err := json.Unmarshal(mockRepo.SavePayloads[0], &evt); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if evt.PatientID != 1 || evt.DiseaseID != 2 {
		t.Errorf("payload ids: got patient %d disease %d", evt.PatientID, evt.DiseaseID)
	}
	if evt.RecordedBy != asDoctor.Username {
		t.Errorf("payload recorded_by: got %q, want %q", evt.RecordedBy, asDoctor.Username)
	}
}

func TestDiagnosisService_AddDefaultsDiagnosisDate(t *testing.T) {
	_, _, svc := newDiagnosisFixture()

	before := time.Now()
	created, err := svc.AddToPatient(context.Background(), asAdmin, domain.Diagnosis{
		PatientID: 1,
		DiseaseID: 2,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.DiagnosisDate.Before(before) || created.DiagnosisDate.After(time.Now()) {
		t.Errorf("unset diagnosis date should default to now, got %v", created.DiagnosisDate)
	}
}

func TestDiagnosisService_AddDeniedForReceptionist(t *testing.T) {
	_, mockRepo, svc := newDiagnosisFixture()

	_, err := svc.AddToPatient(context.Background(), asReceptionist, domain.Diagnosis{PatientID: 1, DiseaseID: 2})
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if len(mockRepo.SaveCalls) != 0 {
		t.Error("denied add must not reach the store")
	}
}

func TestDiagnosisService_ListForPatientJoinsCatalog(t *testing.T) {
	catalog, _, svc := newDiagnosisFixture()

	flu := catalog.SeedDisease(domain.Disease{
		Name:        "Influenza",
		Description: "Seasonal viral infection",
		Symptoms:    "Fever, cough",
		Treatment:   "Rest and fluids",
	})
	asthma := catalog.SeedDisease(domain.Disease{Name: "Asthma"})

	older := time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)

	if _, err := svc.AddToPatient(context.Background(), asDoctor, domain.Diagnosis{
		PatientID: 7, DiseaseID: flu.ID, DiagnosisDate: older,
	}); err != nil {
		t.Fatalf("add older: %v", err)
	}
	if _, err := svc.AddToPatient(context.Background(), asDoctor, domain.Diagnosis{
		PatientID: 7, DiseaseID: asthma.ID, DiagnosisDate: newer,
	}); err != nil {
		t.Fatalf("add newer: %v", err)
	}
	if _, err := svc.AddToPatient(context.Background(), asDoctor, domain.Diagnosis{
		PatientID: 8, DiseaseID: flu.ID, DiagnosisDate: newer,
	}); err != nil {
		t.Fatalf("add other patient: %v", err)
	}

	records, err := svc.ListForPatient(context.Background(), 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records for patient 7, got %d", len(records))
	}
	if records[0].DiseaseName != "Asthma" || records[1].DiseaseName != "Influenza" {
		t.Errorf("expected most recent first, got %s then %s",
			records[0].DiseaseName, records[1].DiseaseName)
	}
	if records[1].DiseaseDescription != "Seasonal viral infection" ||
		records[1].DiseaseTreatment != "Rest and fluids" {
		t.Errorf("catalog fields not joined: %+v", records[1])
	}
}

func TestDiagnosisService_RemoveFromPatient(t *testing.T) {
	catalog, mockRepo, svc := newDiagnosisFixture()
	flu := catalog.SeedDisease(domain.Disease{Name: "Influenza"})

	created, err := svc.AddToPatient(context.Background(), asDoctor, domain.Diagnosis{
		PatientID: 1, DiseaseID: flu.ID,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	removed, err := svc.RemoveFromPatient(context.Background(), asDoctor, created.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !removed {
		t.Fatal("expected removal of an existing episode")
	}

	records, err := svc.ListForPatient(context.Background(), 1)
	if err != nil {
		t.Fatalf("list after remove: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("removed episode still listed: %+v", records)
	}

	// removing the episode must not touch the catalog entry
	if disease, err := catalog.FindByID(context.Background(), flu.ID); err != nil || disease == nil {
		t.Errorf("disease gone after episode removal: %v, %v", disease, err)
	}

	if len(mockRepo.DeletePayloads) != 1 {
		t.Fatalf("expected 1 removal payload, got %d", len(mockRepo.DeletePayloads))
	}
	var evt ports.DiagnosisEvent
	if err := json.Unmarshal(mockRepo.DeletePayloads[0], &evt); err != nil {
		t.Fatalf("removal payload not valid JSON: %v", err)
	}
	if evt.DiagnosisID != created.ID {
		t.Errorf("removal payload id: got %d, want %d", evt.DiagnosisID, created.ID)
	}

	removedAgain, err := svc.RemoveFromPatient(context.Background(), asDoctor, created.ID)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if removedAgain {
		t.Error("second removal of the same episode must report false")
	}
}

func TestDiagnosisService_RemoveDeniedForReceptionist(t *testing.T) {
	_, mockRepo, svc := newDiagnosisFixture()

	_, err := svc.RemoveFromPatient(context.Background(), asReceptionist, 1)
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if len(mockRepo.DeleteCalls) != 0 {
		t.Error("denied removal must not reach the store")
	}
}

func TestDiagnosisService_StorageFailure(t *testing.T) {
	_, mockRepo, svc := newDiagnosisFixture()
	mockRepo.SaveError = errors.New("connection refused")

	_, err := svc.AddToPatient(context.Background(), asDoctor, domain.Diagnosis{PatientID: 1, DiseaseID: 2})
	if !domain.IsStorage(err) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}
