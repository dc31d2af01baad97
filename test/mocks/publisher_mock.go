package mocks

import (
	"context"
	"sync"

	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

// PublishedEvent captures one call to PublishDiagnosisEvent.
type PublishedEvent struct {
	EventType string
	Event     ports.DiagnosisEvent
}

// MockEventPublisher implements ports.DiagnosisEventPublisher for testing.
type MockEventPublisher struct {
	mu sync.Mutex

	Published []PublishedEvent

	// Error injection
	PublishError error
}

var _ ports.DiagnosisEventPublisher = (*MockEventPublisher)(nil)

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishDiagnosisEvent(ctx context.Context, eventType string, evt ports.DiagnosisEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.PublishError != nil {
		return m.PublishError
	}

	m.Published = append(m.Published, PublishedEvent{EventType: eventType, Event: evt})
	return nil
}
