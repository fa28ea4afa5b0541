package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "crms"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Canonical working day: ten one-hour slots from 08:00 to 18:00. A
	// deployment can narrow this (e.g. DAY_START_HOUR=9 for the nine-slot
	// variant) without code changes.
	DefaultDayStartHour = 8
	DefaultDayEndHour   = 18

	DefaultBookingEventsTopic    = "crms.booking-events"
	DefaultBookingEventsDLQTopic = "crms.booking-events.dlq"
	DefaultBookingEventsGroupID  = "crms-notifier"

	DefaultSlotLockTTL = 10 * time.Second

	DefaultPaginationLimit = 100
)
