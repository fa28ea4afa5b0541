package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "crms/internal/bookings/errors"
	"crms/internal/bookings/events"
	"crms/internal/bookings/repository"
	"crms/internal/bookings/validator"
	resourceserrors "crms/internal/resources/errors"
	resourcerepo "crms/internal/resources/repository"
	userserrors "crms/internal/users/errors"
	userrepo "crms/internal/users/repository"
	"crms/pkg/config"
	apperrors "crms/pkg/errors"
	"crms/pkg/model"
	"crms/pkg/slot"
)

type BookingService interface {
	Create(ctx context.Context, userID, resourceID string, req *model.BookingRequest) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByUser(ctx context.Context, userID string) ([]*model.Booking, error)
	GetByResource(ctx context.Context, resourceID string) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, resourceID, date, timeSlot string) (*model.Availability, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	users     userrepo.UserRepository
	resources resourcerepo.ResourceRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	users userrepo.UserRepository,
	resources resourcerepo.ResourceRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		users:     users,
		resources: resources,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, userID, resourceID string, req *model.BookingRequest) (*model.Booking, error) {
	if userID == "" || resourceID == "" {
		return nil, apperrors.InvalidInput("Both userId and resourceId are required")
	}

	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"user_id", userID,
			"resource_id", resourceID,
			"error", err,
		)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findResource(ctx, resourceID); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		UserID:      userID,
		ResourceID:  resourceID,
		BookingDate: req.BookingDate,
		TimeSlot:    req.TimeSlot,
		Status:      initialStatus(user.Role),
	}

	// Advisory lock so two concurrent creates for the same slot serialize
	// before the conflict check runs.
	lockID, err := s.acquireSlotLock(ctx, resourceID, req.BookingDate, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByResourceAndDate(sessCtx, resourceID, req.BookingDate)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}

		if !slot.IsSlotAvailable(existing, resourceID, req.BookingDate, req.TimeSlot) {
			return apperrors.Conflict(fmt.Sprintf(
				"Time slot %s on %s is already booked for this resource",
				req.TimeSlot, req.BookingDate,
			))
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"user_id", userID,
			"resource_id", resourceID,
			"date", req.BookingDate,
			"time_slot", req.TimeSlot,
			"error", err,
		)
		return nil, err
	}

	s.publisher.Publish(ctx, events.TypeBookingCreated, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"user_id", userID,
		"resource_id", resourceID,
		"date", booking.BookingDate,
		"time_slot", booking.TimeSlot,
		"status", booking.Status,
	)
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, count, nil
}

func (s *bookingService) GetByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by user", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) GetByResource(ctx context.Context, resourceID string) ([]*model.Booking, error) {
	if _, err := s.findResource(ctx, resourceID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindByResource(ctx, resourceID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by resource", "resource_id", resourceID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if err := s.validator.ValidateStatus(status); err != nil {
		return nil, apperrors.Validation("Invalid booking status", map[string]any{
			"error": err.Error(),
		})
	}

	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	target := model.BookingStatus(status)
	next, err := slot.Transition(booking.Status, target)
	if err != nil {
		s.cfg.Log.Warn("Rejected booking status transition",
			"id", id,
			"from", booking.Status,
			"to", target,
		)
		return nil, apperrors.InvalidTransition(string(booking.Status), string(target))
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to update booking status", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking status", err)
	}
	booking.Status = next

	switch next {
	case model.BookingApproved:
		s.publisher.Publish(ctx, events.TypeBookingApproved, booking)
	case model.BookingRejected:
		s.publisher.Publish(ctx, events.TypeBookingRejected, booking)
	}

	s.cfg.Log.Info("Booking status updated", "id", id, "status", next)
	return booking, nil
}

// Delete removes a booking in any status. A rejected booking already frees
// its slot, so deletion only matters for record keeping.
func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.publisher.Publish(ctx, events.TypeBookingDeleted, booking)

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, resourceID, date, timeSlot string) (*model.Availability, error) {
	if resourceID == "" {
		return nil, apperrors.InvalidInput("resourceId is required")
	}
	if _, err := s.findResource(ctx, resourceID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateSlot(date, timeSlot); err != nil {
		return nil, apperrors.Validation("Invalid availability query", map[string]any{
			"error": err.Error(),
		})
	}

	bookings, err := s.repo.FindByResourceAndDate(ctx, resourceID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to check availability",
			"resource_id", resourceID,
			"date", date,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	return &model.Availability{
		Available:  slot.IsSlotAvailable(bookings, resourceID, date, timeSlot),
		ResourceID: resourceID,
		Date:       date,
		TimeSlot:   timeSlot,
	}, nil
}

// --- Helpers ---

// initialStatus implements the approval rule: bookings made by admins are
// approved immediately, everyone else starts pending review.
func initialStatus(role model.UserRole) model.BookingStatus {
	if role == model.RoleAdmin {
		return model.BookingApproved
	}
	return model.BookingPending
}

func (s *bookingService) findBooking(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}
	return booking, nil
}

func (s *bookingService) findUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user, nil
}

func (s *bookingService) findResource(ctx context.Context, id string) (*model.Resource, error) {
	resource, err := s.resources.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, resourceserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Resource", id)
		}
		if errors.Is(err, resourceserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid resource ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve resource", err)
	}
	return resource, nil
}

// acquireSlotLock creates an advisory lock for the slot. Conflict is
// returned when another request holds the lock.
func (s *bookingService) acquireSlotLock(ctx context.Context, resourceID, date, timeSlot string) (string, error) {
	lockID := fmt.Sprintf("booking_lock_%s_%s_%s", resourceID, date, timeSlot)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	if _, err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
