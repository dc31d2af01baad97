package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stavrosm/city-clinic/records-service/internal/adapters/handler"
	"github.com/stavrosm/city-clinic/records-service/internal/adapters/middleware"
	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/services"
	"github.com/stavrosm/city-clinic/records-service/test/mocks"
)

var asDoctor = &domain.User{ID: 2, Username: "drsmith", Role: domain.RoleDoctor}

func newPatientFixture() (*mocks.MockPatientRepository, *handler.PatientHandler) {
	mockRepo := mocks.NewMockPatientRepository()
	svc := services.NewPatientService(mockRepo)
	return mockRepo, handler.NewPatientHandler(svc)
}

// authed attaches a principal the way RequireRole does for guarded routes.
func authed(req *http.Request, principal *domain.User) *http.Request {
	return req.WithContext(middleware.ContextWithPrincipal(req.Context(), principal, "test-jti"))
}

func TestPatientHandler_Create(t *testing.T) {
	_, h := newPatientFixture()

	body := `{
		"first_name": "Maria",
		"last_name": "Santos",
		"date_of_birth": "1990-06-15",
		"gender": "Female",
		"contact_number": "123-456-7890",
		"email": "maria@example.com",
		"address": "12 Harbor St"
	}`
	req := authed(httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(body)), asDoctor)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID        int    `json:"id"`
		FirstName string `json:"first_name"`
		Age       int    `json:"age"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == 0 || resp.FirstName != "Maria" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Age < 35 {
		t.Errorf("age not derived from date of birth: %d", resp.Age)
	}
}

func TestPatientHandler_CreateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantHint string
	}{
		{
			name:     "malformed json",
			body:     `{"first_name":`,
			wantHint: "invalid request body",
		},
		{
			name:     "unparseable date of birth",
			body:     `{"first_name":"Maria","last_name":"Santos","date_of_birth":"15/06/1990"}`,
			wantHint: "invalid date of birth",
		},
		{
			name:     "validation failure surfaces reason",
			body:     `{"last_name":"Santos","date_of_birth":"1990-06-15","gender":"Female"}`,
			wantHint: "first name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, h := newPatientFixture()

			req := authed(httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(tt.body)), asDoctor)
			rec := httptest.NewRecorder()
			h.Create(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantHint) {
				t.Errorf("body %q does not mention %q", rec.Body.String(), tt.wantHint)
			}
			if len(mockRepo.SaveCalls) != 0 {
				t.Error("rejected create must not reach the store")
			}
		})
	}
}

func TestPatientHandler_DeleteForbiddenWithoutAdmin(t *testing.T) {
	mockRepo, h := newPatientFixture()
	seeded := mockRepo.SeedPatient(mocks.NewTestPatient("Maria", "Santos"))

	req := authed(httptest.NewRequest(http.MethodDelete, "/patients/"+strconv.Itoa(seeded.ID), nil), asDoctor)
	req.SetPathValue("id", strconv.Itoa(seeded.ID))
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", rec.Code)
	}
	if len(mockRepo.DeleteCalls) != 0 {
		t.Error("forbidden delete must not reach the store")
	}
}

func TestPatientHandler_Get(t *testing.T) {
	mockRepo, h := newPatientFixture()
	seeded := mockRepo.SeedPatient(mocks.NewTestPatient("Maria", "Santos"))

	req := httptest.NewRequest(http.MethodGet, "/patients/"+strconv.Itoa(seeded.ID), nil)
	req.SetPathValue("id", strconv.Itoa(seeded.ID))
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	missing := httptest.NewRequest(http.MethodGet, "/patients/999", nil)
	missing.SetPathValue("id", "999")
	rec = httptest.NewRecorder()
	h.Get(rec, missing)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing patient: got %d, want 404", rec.Code)
	}

	bad := httptest.NewRequest(http.MethodGet, "/patients/abc", nil)
	bad.SetPathValue("id", "abc")
	rec = httptest.NewRecorder()
	h.Get(rec, bad)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric id: got %d, want 400", rec.Code)
	}
}

func TestPatientHandler_ListWithNameFilter(t *testing.T) {
	mockRepo, h := newPatientFixture()

	mockRepo.SeedPatient(mocks.NewTestPatient("Ana", "Cruz"))
	mockRepo.SeedPatient(mocks.NewTestPatient("Bruno", "Lopez"))

	req := httptest.NewRequest(http.MethodGet, "/patients?name=ana", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var resp []struct {
		FirstName string `json:"first_name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].FirstName != "Ana" {
		t.Errorf("unexpected filtered result: %+v", resp)
	}
}
