package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/services"
	"github.com/stavrosm/city-clinic/records-service/test/mocks"
)

func TestDiseaseService_Create(t *testing.T) {
	mockRepo := mocks.NewMockDiseaseRepository()
	svc := services.NewDiseaseService(mockRepo)

	created, err := svc.Create(context.Background(), asDoctor, domain.Disease{
		Name:        "Influenza",
		Description: "Seasonal viral infection",
		Symptoms:    "Fever, cough, fatigue",
		Treatment:   "Rest and fluids",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Error("created disease must carry the assigned id")
	}
}

func TestDiseaseService_CreateRequiresName(t *testing.T) {
	mockRepo := mocks.NewMockDiseaseRepository()
	svc := services.NewDiseaseService(mockRepo)

	_, err := svc.Create(context.Background(), asDoctor, domain.Disease{Name: "   "})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(mockRepo.SaveCalls) != 0 {
		t.Error("invalid create must not reach the store")
	}
}

func TestDiseaseService_CreateDeniedForReceptionist(t *testing.T) {
	mockRepo := mocks.NewMockDiseaseRepository()
	svc := services.NewDiseaseService(mockRepo)

	_, err := svc.Create(context.Background(), asReceptionist, domain.Disease{Name: "Influenza"})
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestDiseaseService_ListAllSortedByName(t *testing.T) {
	mockRepo := mocks.NewMockDiseaseRepository()
	mockRepo.SeedDisease(domain.Disease{Name: "Pneumonia"})
	mockRepo.SeedDisease(domain.Disease{Name: "Asthma"})
	mockRepo.SeedDisease(domain.Disease{Name: "Influenza"})
	svc := services.NewDiseaseService(mockRepo)

	got, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	wantOrder := []string{"Asthma", "Influenza", "Pneumonia"}
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d diseases, got %d", len(wantOrder), len(got))
	}
	for i, name := range wantOrder {
		if got[i].Name != name {
			t.Errorf("position %d: got %s, want %s", i, got[i].Name, name)
		}
	}
}

func TestDiseaseService_GetByID(t *testing.T) {
	mockRepo := mocks.NewMockDiseaseRepository()
	seeded := mockRepo.SeedDisease(domain.Disease{Name: "Asthma"})
	svc := services.NewDiseaseService(mockRepo)

	got, err := svc.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Name != "Asthma" {
		t.Errorf("unexpected disease: %+v", got)
	}

	missing, err := svc.GetByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("missing id must return none")
	}
}

func TestDiseaseService_StorageFailure(t *testing.T) {
	mockRepo := mocks.NewMockDiseaseRepository()
	mockRepo.FindAllError = errors.New("connection refused")
	svc := services.NewDiseaseService(mockRepo)

	_, err := svc.ListAll(context.Background())
	if !domain.IsStorage(err) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}
