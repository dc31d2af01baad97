package ports

import (
	"context"
	"time"
)

const (
	EventDiagnosisRecorded = "diagnosis.recorded"
	EventDiagnosisRemoved  = "diagnosis.removed"
)

// DiagnosisEvent is the audit payload written to the outbox when a diagnosis
// episode is recorded or removed, and published to the broker by the relay.
type DiagnosisEvent struct {
	DiagnosisID   int       `json:"diagnosis_id"`
	PatientID     int       `json:"patient_id"`
	DiseaseID     int       `json:"disease_id"`
	DiagnosisDate time.Time `json:"diagnosis_date"`
	Status        string    `json:"status,omitempty"`
	RecordedBy    string    `json:"recorded_by,omitempty"`
}

type DiagnosisEventPublisher interface {
	PublishDiagnosisEvent(ctx context.Context, eventType string, evt DiagnosisEvent) error
}
