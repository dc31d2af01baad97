package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeServiceError maps the domain failure shapes onto HTTP statuses.
// Validation failures are safe to echo back; storage failures are not.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		http.Error(w, ve.Reason, http.StatusBadRequest)
		return
	}
	if errors.Is(err, domain.ErrPermissionDenied) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	log.Printf("service error: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
