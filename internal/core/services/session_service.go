package services

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

const lastLoginUpdateTimeout = 5 * time.Second

// SessionService holds the single authenticated operator for this process.
// It is constructed once in main and injected wherever the current principal
// is needed; there is no package-level instance.
type SessionService struct {
	userRepo ports.UserRepository

	mu      sync.RWMutex
	current *domain.User
}

var _ ports.SessionService = (*SessionService)(nil)

func NewSessionService(userRepo ports.UserRepository) *SessionService {
	return &SessionService{userRepo: userRepo}
}

// Login verifies the credentials and, on success, installs the user as the
// current principal and returns it. An unknown username or a wrong password
// returns (nil, nil) with no state change; only store failures surface as
// errors. The last-login timestamp is recorded on a background goroutine
// because its failure must not invalidate an otherwise successful login.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, &domain.StorageError{Op: "find user by username", Err: err}
	}
	if user == nil {
		return nil, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()

	go func(userID int) {
		ctx, cancel := context.WithTimeout(context.Background(), lastLoginUpdateTimeout)
		defer cancel()
		if err := s.userRepo.UpdateLastLogin(ctx, userID); err != nil {
			log.Printf("session: failed to record last login for user %d: %v", userID, err)
		}
	}(user.ID)

	return user, nil
}

// Logout clears the current principal. Safe to call when nobody is logged in.
func (s *SessionService) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// CurrentUser returns the authenticated principal, or nil when idle.
func (s *SessionService) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// HasRole reports whether an operator is logged in with exactly this role.
func (s *SessionService) HasRole(role domain.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.Role == role
}

func (s *SessionService) IsAdmin() bool        { return s.HasRole(domain.RoleAdmin) }
func (s *SessionService) IsDoctor() bool       { return s.HasRole(domain.RoleDoctor) }
func (s *SessionService) IsReceptionist() bool { return s.HasRole(domain.RoleReceptionist) }
