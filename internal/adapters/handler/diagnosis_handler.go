package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/stavrosm/city-clinic/records-service/internal/adapters/middleware"
	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

type DiagnosisHandler struct {
	diagnoses ports.DiagnosisService
}

func NewDiagnosisHandler(diagnoses ports.DiagnosisService) *DiagnosisHandler {
	return &DiagnosisHandler{diagnoses: diagnoses}
}

type diagnosisRequest struct {
	DiseaseID     int    `json:"disease_id"`
	DiagnosisDate string `json:"diagnosis_date,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Status        string `json:"status,omitempty"`
}

func (h *DiagnosisHandler) Add(w http.ResponseWriter, r *http.Request) {
	patientID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return
	}

	var req diagnosisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	diagnosis := domain.Diagnosis{
		PatientID: patientID,
		DiseaseID: req.DiseaseID,
		Notes:     req.Notes,
		Status:    req.Status,
	}
	if req.DiagnosisDate != "" {
		when, err := time.Parse(time.RFC3339, req.DiagnosisDate)
		if err != nil {
			http.Error(w, "invalid diagnosis date, expected RFC 3339", http.StatusBadRequest)
			return
		}
		diagnosis.DiagnosisDate = when
	}

	created, err := h.diagnoses.AddToPatient(r.Context(), middleware.PrincipalFromContext(r.Context()), diagnosis)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *DiagnosisHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return
	}

	records, err := h.diagnoses.ListForPatient(r.Context(), patientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if records == nil {
		records = []domain.DiagnosisRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *DiagnosisHandler) Remove(w http.ResponseWriter, r *http.Request) {
	diagnosisID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid diagnosis id", http.StatusBadRequest)
		return
	}

	removed, err := h.diagnoses.RemoveFromPatient(r.Context(), middleware.PrincipalFromContext(r.Context()), diagnosisID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !removed {
		http.Error(w, "diagnosis not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Diagnosis removed"})
}
