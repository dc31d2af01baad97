package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/stavrosm/city-clinic/records-service/internal/adapters/middleware"
	"github.com/stavrosm/city-clinic/records-service/internal/adapters/session"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

// TokenRevoker marks an issued token id as revoked for its remaining life.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

type AuthHandler struct {
	sessions ports.SessionService
	tokens   *session.TokenManager
	revoker  TokenRevoker
}

func NewAuthHandler(sessions ports.SessionService, tokens *session.TokenManager, revoker TokenRevoker) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		tokens:   tokens,
		revoker:  revoker,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Role    string `json:"role"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Printf("auth: login failed for %q: %v", req.Username, err)
		http.Error(w, "login unavailable", http.StatusServiceUnavailable)
		return
	}
	if user == nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	issued, err := h.tokens.Issue(user)
	if err != nil {
		log.Printf("auth: token issue failed for %q: %v", req.Username, err)
		http.Error(w, "login unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{
		Message: "Login successful",
		Token:   issued.Token,
		Role:    string(user.Role),
	})
}

// Logout revokes the caller's bearer token and clears the session. Repeated
// calls are harmless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID := middleware.TokenIDFromContext(r.Context())
	if tokenID != "" {
		if err := h.revoker.Revoke(r.Context(), tokenID, session.TokenLifetime); err != nil {
			log.Printf("auth: failed to revoke token %s: %v", tokenID, err)
			http.Error(w, "logout unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	h.sessions.Logout()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Logged out"})
}
