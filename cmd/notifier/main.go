// The notifier consumes booking events and records the notification that a
// delivery channel (mail, chat) would send. It runs as a separate process so
// a slow or failing consumer never affects the API server.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"crms/internal/bookings/events"
	"crms/pkg/config"
	"crms/pkg/kafka"
	kafka_config "crms/pkg/kafka/config"
	kafka_middleware "crms/pkg/kafka/middleware"
	"crms/pkg/logger"
)

const ServiceName = "crms-notifier"

func main() {
	cfg := config.Load(ServiceName)

	if !cfg.KafkaEnabled() {
		cfg.Log.Fatal("KAFKA_BROKERS must be set for the notifier")
	}

	kcfg := kafka_config.Load()
	kcfg.Brokers = cfg.KafkaBrokers

	consumer, err := kafka.NewConsumer(
		kcfg,
		cfg.BookingEventsTopic,
		cfg.BookingEventsGroupID,
		cfg.BookingEventsDLQTopic,
		handleBookingEvent(cfg.Log),
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware())

	ctx, cancel := context.WithCancel(context.Background())

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	cfg.Log.Info("Notifier started",
		"topic", cfg.BookingEventsTopic,
		"group_id", cfg.BookingEventsGroupID,
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped")
}

func handleBookingEvent(log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event events.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("failed to decode booking event", err)
		}

		switch event.Type {
		case events.TypeBookingCreated:
			log.Info("Notify: booking received and pending review",
				"booking_id", event.BookingID,
				"user_id", event.UserID,
				"resource_id", event.ResourceID,
				"date", event.BookingDate,
				"time_slot", event.TimeSlot,
				"status", event.Status,
			)
		case events.TypeBookingApproved:
			log.Info("Notify: booking approved",
				"booking_id", event.BookingID,
				"user_id", event.UserID,
			)
		case events.TypeBookingRejected:
			log.Info("Notify: booking rejected",
				"booking_id", event.BookingID,
				"user_id", event.UserID,
			)
		case events.TypeBookingDeleted:
			log.Info("Notify: booking cancelled",
				"booking_id", event.BookingID,
				"user_id", event.UserID,
			)
		default:
			log.Warn("Unknown booking event type", "type", event.Type)
		}

		return nil
	}
}
