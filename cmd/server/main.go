package main

import (
	"crms/internal/bookings/events"
	bookinghandler "crms/internal/bookings/handler"
	bookingrepo "crms/internal/bookings/repository"
	bookingservice "crms/internal/bookings/service"
	bookingvalidator "crms/internal/bookings/validator"
	resourcehandler "crms/internal/resources/handler"
	resourcerepo "crms/internal/resources/repository"
	resourceservice "crms/internal/resources/service"
	resourcevalidator "crms/internal/resources/validator"
	userhandler "crms/internal/users/handler"
	userrepo "crms/internal/users/repository"
	userservice "crms/internal/users/service"
	uservalidator "crms/internal/users/validator"
	"crms/pkg/app"
	"crms/pkg/config"
	"crms/pkg/kafka"
	kafka_config "crms/pkg/kafka/config"
)

const ServiceName = "crms-server"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	users := userrepo.NewMongoUserRepository(cfg)
	resources := resourcerepo.NewMongoResourceRepository(cfg)
	bookings := bookingrepo.NewMongoBookingRepository(cfg)
	locks := bookingrepo.NewBookingLockRepository(cfg)

	userSvc := userservice.NewUserService(users, uservalidator.NewUserValidator(cfg.Log), cfg)
	resourceSvc := resourceservice.NewResourceService(resources, resourcevalidator.NewResourceValidator(cfg.Log), cfg)
	bookingSvc := bookingservice.NewBookingService(
		bookings,
		locks,
		users,
		resources,
		bookingvalidator.NewBookingValidator(cfg.TimeSlots, cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized",
		"database", cfg.MongoDatabaseName,
		"time_slots", len(cfg.TimeSlots),
	)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		userhandler.NewUserHandler(userSvc, cfg.Log),
		resourcehandler.NewResourceHandler(resourceSvc, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, cfg.Log),
	)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled() {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return events.NewNoopPublisher()
	}

	kcfg := kafka_config.Load()
	kcfg.Brokers = cfg.KafkaBrokers

	producer, err := kafka.NewProducer(kcfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Booking event publisher initialized",
		"topic", cfg.BookingEventsTopic,
		"dlq_topic", cfg.BookingEventsDLQTopic,
	)
	return events.NewKafkaPublisher(producer, cfg.Log)
}
