package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/checkout"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/config"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/middleware"
)

// Ensure KafkaPublisher implements checkout.EventPublisher
var _ checkout.EventPublisher = (*KafkaPublisher)(nil)

// EventType represents the type of checkout event.
type EventType string

const (
	EventTypeCheckoutStarted  EventType = "checkout.started"
	EventTypeCheckoutExecuted EventType = "checkout.executed"
	EventTypeCheckoutFailed   EventType = "checkout.failed"
)

// CheckoutEvent represents a checkout lifecycle event.
type CheckoutEvent struct {
	ID            string          `json:"id"`
	Type          EventType       `json:"type"`
	SessionID     string          `json:"session_id"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id,omitempty"`
}

// KafkaPublisher publishes checkout events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *logrus.Entry
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *logrus.Entry) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.CheckoutTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  cfg.CheckoutTopic,
		logger: logger,
	}
}

// PublishCheckoutStarted publishes a checkout started event.
func (p *KafkaPublisher) PublishCheckoutStarted(ctx context.Context, session *checkout.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	event := p.createEvent(ctx, EventTypeCheckoutStarted, session.ID, data)
	return p.publish(ctx, event)
}

// PublishCheckoutExecuted publishes a checkout executed event.
func (p *KafkaPublisher) PublishCheckoutExecuted(ctx context.Context, session *checkout.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	event := p.createEvent(ctx, EventTypeCheckoutExecuted, session.ID, data)
	return p.publish(ctx, event)
}

// PublishCheckoutFailed publishes a checkout failed event with the failure
// reason code.
func (p *KafkaPublisher) PublishCheckoutFailed(ctx context.Context, session *checkout.Session, reason string) error {
	payload := struct {
		Session *checkout.Session `json:"session"`
		Reason  string            `json:"reason"`
	}{
		Session: session,
		Reason:  reason,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := p.createEvent(ctx, EventTypeCheckoutFailed, session.ID, data)
	return p.publish(ctx, event)
}

func (p *KafkaPublisher) createEvent(ctx context.Context, eventType EventType, sessionID string, data []byte) *CheckoutEvent {
	return &CheckoutEvent{
		ID:            "evt_" + uuid.NewString(),
		Type:          eventType,
		SessionID:     sessionID,
		Data:          data,
		Timestamp:     time.Now().UTC(),
		CorrelationID: middleware.RequestIDFromContext(ctx),
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, event *CheckoutEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.SessionID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithFields(logrus.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
			"session_id": event.SessionID,
			"error":      err.Error(),
		}).Error("Failed to publish event")
		return err
	}

	p.logger.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"session_id": event.SessionID,
	}).Info("Event published")

	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("Closing Kafka publisher")
	return p.writer.Close()
}
