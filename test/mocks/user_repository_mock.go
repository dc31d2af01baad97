// Package mocks provides in-memory implementations of the port interfaces
// for testing. Services depend on the ports, so a test can inject a mock and
// exercise the core without a database, broker, or Redis.
package mocks

import (
	"context"
	"sync"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

// MockUserRepository implements ports.UserRepository for testing.
type MockUserRepository struct {
	mu sync.Mutex

	users map[string]*domain.User

	// Call tracking for verification
	FindByUsernameCalls  []string
	UpdateLastLoginCalls []int

	// Error injection
	FindByUsernameError  error
	UpdateLastLoginError error

	// Receives the user id after each UpdateLastLogin call so tests can
	// wait for the asynchronous last-login write without sleeping.
	LastLoginUpdated chan int
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:            make(map[string]*domain.User),
		LastLoginUpdated: make(chan int, 8),
	}
}

// SeedUser adds an account for test setup.
func (m *MockUserRepository) SeedUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Username] = user
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindByUsernameCalls = append(m.FindByUsernameCalls, username)

	if m.FindByUsernameError != nil {
		return nil, m.FindByUsernameError
	}

	user, ok := m.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID int) error {
	m.mu.Lock()
	m.UpdateLastLoginCalls = append(m.UpdateLastLoginCalls, userID)
	err := m.UpdateLastLoginError
	m.mu.Unlock()

	select {
	case m.LastLoginUpdated <- userID:
	default:
	}
	return err
}
