// Package events publishes booking lifecycle events to the event stream.
// Publishing is best effort: a failed publish is logged and never fails the
// request that triggered it.
package events

import (
	"context"

	"crms/pkg/kafka"
	"crms/pkg/logger"
	"crms/pkg/model"
)

const (
	TypeBookingCreated  = "booking.created"
	TypeBookingApproved = "booking.approved"
	TypeBookingRejected = "booking.rejected"
	TypeBookingDeleted  = "booking.deleted"

	schemaVersion = "1"
	sourceService = "crms-server"
)

// BookingEvent is the payload carried by every booking event.
type BookingEvent struct {
	Type        string              `json:"type"`
	BookingID   string              `json:"booking_id"`
	UserID      string              `json:"user_id,omitempty"`
	ResourceID  string              `json:"resource_id,omitempty"`
	BookingDate string              `json:"booking_date,omitempty"`
	TimeSlot    string              `json:"time_slot,omitempty"`
	Status      model.BookingStatus `json:"status,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, booking *model.Booking)
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) {
	event := BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		ResourceID:  booking.ResourceID,
		BookingDate: booking.BookingDate,
		TimeSlot:    booking.TimeSlot,
		Status:      booking.Status,
	}

	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(event).
		WithEventType(eventType).
		WithSchemaVersion(schemaVersion).
		WithSource(sourceService).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
		return
	}

	p.log.Debug("Booking event published",
		"event_type", eventType,
		"booking_id", booking.ID,
	)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher is used when no Kafka brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, *model.Booking) {}

func (noopPublisher) Close() error { return nil }
