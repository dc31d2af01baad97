package messaging

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

var _ ports.DiagnosisEventPublisher = (*RabbitMQBroker)(nil)

// auditMessage is the wire envelope: the event type travels with the payload
// so one queue can carry both recorded and removed events.
type auditMessage struct {
	EventType string               `json:"event_type"`
	Event     ports.DiagnosisEvent `json:"event"`
}

func (rmq *RabbitMQBroker) PublishDiagnosisEvent(ctx context.Context, eventType string, evt ports.DiagnosisEvent) error {
	body, err := json.Marshal(auditMessage{EventType: eventType, Event: evt})
	if err != nil {
		return err
	}

	// Respect context deadline
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) <= 0 {
			return ctx.Err()
		}
	}

	// Circuit breaker protects the publish path when the broker is down
	_, err = rmq.cb.Execute(func() (interface{}, error) {
		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
			},
		)
		return nil, err
	})
	return err
}
