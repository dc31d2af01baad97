package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/stavrosm/city-clinic/records-service/internal/adapters/middleware"
	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

type DiseaseHandler struct {
	diseases ports.DiseaseService
}

func NewDiseaseHandler(diseases ports.DiseaseService) *DiseaseHandler {
	return &DiseaseHandler{diseases: diseases}
}

func (h *DiseaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var disease domain.Disease
	if err := json.NewDecoder(r.Body).Decode(&disease); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	disease.ID = 0

	created, err := h.diseases.Create(r.Context(), middleware.PrincipalFromContext(r.Context()), disease)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *DiseaseHandler) List(w http.ResponseWriter, r *http.Request) {
	diseases, err := h.diseases.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if diseases == nil {
		diseases = []domain.Disease{}
	}
	writeJSON(w, http.StatusOK, diseases)
}

func (h *DiseaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	diseaseID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid disease id", http.StatusBadRequest)
		return
	}

	disease, err := h.diseases.GetByID(r.Context(), diseaseID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if disease == nil {
		http.Error(w, "disease not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, disease)
}
