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

type PatientHandler struct {
	patients ports.PatientService
}

func NewPatientHandler(patients ports.PatientService) *PatientHandler {
	return &PatientHandler{patients: patients}
}

type patientRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DateOfBirth   string `json:"date_of_birth"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

type patientResponse struct {
	domain.Patient
	Age int `json:"age"`
}

func toPatientResponse(p domain.Patient) patientResponse {
	return patientResponse{Patient: p, Age: p.Age()}
}

func (req *patientRequest) toDomain() (domain.Patient, error) {
	patient := domain.Patient{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Gender:        req.Gender,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Address:       req.Address,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return domain.Patient{}, err
		}
		patient.DateOfBirth = dob
	}
	return patient, nil
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req patientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	patient, err := req.toDomain()
	if err != nil {
		http.Error(w, "invalid date of birth, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	created, err := h.patients.Create(r.Context(), middleware.PrincipalFromContext(r.Context()), patient)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPatientResponse(*created))
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	patientID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return
	}

	var req patientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	patient, err := req.toDomain()
	if err != nil {
		http.Error(w, "invalid date of birth, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	patient.ID = patientID

	updated, err := h.patients.Update(r.Context(), middleware.PrincipalFromContext(r.Context()), patient)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !updated {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Patient updated"})
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	patientID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return
	}

	deleted, err := h.patients.Delete(r.Context(), middleware.PrincipalFromContext(r.Context()), patientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Patient deleted"})
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	patientID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return
	}

	patient, err := h.patients.GetByID(r.Context(), patientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if patient == nil {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toPatientResponse(*patient))
}

// List returns all patients, or a name search when ?name= is present.
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("name")

	patients, err := h.patients.SearchByName(r.Context(), term)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	responses := make([]patientResponse, 0, len(patients))
	for _, p := range patients {
		responses = append(responses, toPatientResponse(p))
	}
	writeJSON(w, http.StatusOK, responses)
}
