package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "crms/internal/bookings/errors"
	"crms/internal/bookings/events"
	"crms/internal/bookings/validator"
	resourceserrors "crms/internal/resources/errors"
	userserrors "crms/internal/users/errors"
	"crms/pkg/config"
	mongotx "crms/pkg/db/mongo"
	apperrors "crms/pkg/errors"
	"crms/pkg/logger"
	"crms/pkg/model"
)

const (
	adminID    = "507f1f77bcf86cd799439011"
	studentID  = "507f1f77bcf86cd799439012"
	resourceID = "507f1f77bcf86cd799439021"
	bookingID  = "507f1f77bcf86cd799439031"
)

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type mockBookingRepository struct {
	findByResourceAndDateFunc func(ctx context.Context, resourceID, date string) ([]*model.Booking, error)
	findByIDFunc              func(ctx context.Context, id string) (*model.Booking, error)
	findAllFunc               func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	countFunc                 func(ctx context.Context) (int64, error)

	created       []*model.Booking
	statusUpdates map[string]model.BookingStatus
	deleted       []string
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	booking.ID = bookingID
	m.created = append(m.created, booking)
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByResource(ctx context.Context, resourceID string) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByResourceAndDate(ctx context.Context, resourceID, date string) ([]*model.Booking, error) {
	if m.findByResourceAndDateFunc != nil {
		return m.findByResourceAndDateFunc(ctx, resourceID, date)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	if m.statusUpdates == nil {
		m.statusUpdates = map[string]model.BookingStatus{}
	}
	m.statusUpdates[id] = status
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockLockRepository struct {
	mu       sync.Mutex
	held     map[string]bool
	failures int
}

func (m *mockLockRepository) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held == nil {
		m.held = map[string]bool{}
	}
	if m.held[lock.ID] {
		m.failures++
		return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	}
	m.held[lock.ID] = true
	return lock, nil
}

func (m *mockLockRepository) Delete(ctx context.Context, lockID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, lockID)
	return nil
}

type mockUserRepository struct {
	users map[string]*model.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error { return nil }

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("%w: %s", userserrors.ErrNotFound, id)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	return []*model.User{}, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error { return nil }

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) { return 0, nil }

func (m *mockUserRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockResourceRepository struct {
	resources map[string]*model.Resource
}

func (m *mockResourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	return nil
}

func (m *mockResourceRepository) FindByID(ctx context.Context, id string) (*model.Resource, error) {
	if r, ok := m.resources[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w: %s", resourceserrors.ErrNotFound, id)
}

func (m *mockResourceRepository) FindAll(ctx context.Context) ([]*model.Resource, error) {
	return []*model.Resource{}, nil
}

func (m *mockResourceRepository) Update(ctx context.Context, id string, update *model.ResourceUpdate) (*mongo.UpdateResult, error) {
	return nil, nil
}

func (m *mockResourceRepository) Delete(ctx context.Context, id string) error { return nil }

func (m *mockResourceRepository) Count(ctx context.Context) (int64, error) { return 0, nil }

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
}

func (p *recordingPublisher) Close() error { return nil }

// ────────────────────────────────────────────────
// Fixture
// ────────────────────────────────────────────────

type fixture struct {
	repo      *mockBookingRepository
	locks     *mockLockRepository
	publisher *recordingPublisher
	service   BookingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		SlotLockTTL:  10 * time.Second,
		TimeSlots:    model.DefaultTimeSlots,
	}

	repo := &mockBookingRepository{}
	locks := &mockLockRepository{}
	publisher := &recordingPublisher{}
	users := &mockUserRepository{users: map[string]*model.User{
		adminID:   {ID: adminID, Role: model.RoleAdmin, Status: model.UserActive},
		studentID: {ID: studentID, Role: model.RoleStudent, Status: model.UserActive},
	}}
	resources := &mockResourceRepository{resources: map[string]*model.Resource{
		resourceID: {ID: resourceID, Name: "Physics Lab", Type: model.Lab, Capacity: 30, Status: model.ResourceAvailable},
	}}

	svc := NewBookingService(
		repo,
		locks,
		users,
		resources,
		validator.NewBookingValidator(cfg.TimeSlots, log),
		publisher,
		cfg,
	)

	return &fixture{repo: repo, locks: locks, publisher: publisher, service: svc}
}

func request(date, slot string) *model.BookingRequest {
	return &model.BookingRequest{BookingDate: date, TimeSlot: slot}
}

func wantAppError(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
	return appErr
}

// ────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────

func TestCreate_StudentStartsPending(t *testing.T) {
	f := newFixture(t)

	booking, err := f.service.Create(context.Background(), studentID, resourceID, request("2026-09-01", "09:00 - 10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != model.BookingPending {
		t.Errorf("expected PENDING, got %s", booking.Status)
	}
	if booking.ID != bookingID {
		t.Errorf("expected assigned ID, got %q", booking.ID)
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0] != events.TypeBookingCreated {
		t.Errorf("expected a single created event, got %v", f.publisher.events)
	}
}

func TestCreate_AdminAutoApproved(t *testing.T) {
	f := newFixture(t)

	booking, err := f.service.Create(context.Background(), adminID, resourceID, request("2026-09-01", "09:00 - 10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != model.BookingApproved {
		t.Errorf("expected APPROVED, got %s", booking.Status)
	}
}

func TestCreate_SlotConflict(t *testing.T) {
	f := newFixture(t)
	f.repo.findByResourceAndDateFunc = func(ctx context.Context, rid, date string) ([]*model.Booking, error) {
		return []*model.Booking{{
			ID:          "existing",
			UserID:      studentID,
			ResourceID:  rid,
			BookingDate: date,
			TimeSlot:    "09:00 - 10:00",
			Status:      model.BookingPending,
		}}, nil
	}

	_, err := f.service.Create(context.Background(), studentID, resourceID, request("2026-09-01", "09:00 - 10:00"))
	wantAppError(t, err, apperrors.CodeConflict)

	if len(f.repo.created) != 0 {
		t.Errorf("conflicting booking must not be persisted")
	}
	if len(f.publisher.events) != 0 {
		t.Errorf("no event must be published on conflict, got %v", f.publisher.events)
	}
}

func TestCreate_RejectedBookingFreesSlot(t *testing.T) {
	f := newFixture(t)
	f.repo.findByResourceAndDateFunc = func(ctx context.Context, rid, date string) ([]*model.Booking, error) {
		return []*model.Booking{{
			ID:          "existing",
			ResourceID:  rid,
			BookingDate: date,
			TimeSlot:    "09:00 - 10:00",
			Status:      model.BookingRejected,
		}}, nil
	}

	booking, err := f.service.Create(context.Background(), studentID, resourceID, request("2026-09-01", "09:00 - 10:00"))
	if err != nil {
		t.Fatalf("rebooking a rejected slot must succeed, got %v", err)
	}
	if booking.Status != model.BookingPending {
		t.Errorf("expected PENDING, got %s", booking.Status)
	}
}

func TestCreate_UnknownTimeSlot(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), studentID, resourceID, request("2026-09-01", "09:30 - 10:30"))
	wantAppError(t, err, apperrors.CodeValidation)
}

func TestCreate_SlotSpacingMustMatchCatalog(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), studentID, resourceID, request("2026-09-01", "09:00-10:00"))
	wantAppError(t, err, apperrors.CodeValidation)
}

func TestCreate_MalformedDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), studentID, resourceID, request("01-09-2026", "09:00 - 10:00"))
	wantAppError(t, err, apperrors.CodeValidation)
}

func TestCreate_UnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), "507f1f77bcf86cd799439099", resourceID, request("2026-09-01", "09:00 - 10:00"))
	wantAppError(t, err, apperrors.CodeNotFound)
}

func TestCreate_LockHeldByAnotherRequest(t *testing.T) {
	f := newFixture(t)
	f.locks.held = map[string]bool{
		fmt.Sprintf("booking_lock_%s_%s_%s", resourceID, "2026-09-01", "09:00 - 10:00"): true,
	}

	_, err := f.service.Create(context.Background(), studentID, resourceID, request("2026-09-01", "09:00 - 10:00"))
	wantAppError(t, err, apperrors.CodeConflict)
}

func TestCreate_LockReleasedAfterSuccess(t *testing.T) {
	f := newFixture(t)

	if _, err := f.service.Create(context.Background(), studentID, resourceID, request("2026-09-01", "09:00 - 10:00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.locks.held) != 0 {
		t.Errorf("lock must be released after create, still held: %v", f.locks.held)
	}
}

// ────────────────────────────────────────────────
// UpdateStatus
// ────────────────────────────────────────────────

func pendingBooking() *model.Booking {
	return &model.Booking{
		ID:          bookingID,
		UserID:      studentID,
		ResourceID:  resourceID,
		BookingDate: "2026-09-01",
		TimeSlot:    "09:00 - 10:00",
		Status:      model.BookingPending,
	}
}

func TestUpdateStatus_ApprovePending(t *testing.T) {
	f := newFixture(t)
	f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return pendingBooking(), nil
	}

	booking, err := f.service.UpdateStatus(context.Background(), bookingID, "APPROVED")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != model.BookingApproved {
		t.Errorf("expected APPROVED, got %s", booking.Status)
	}
	if f.repo.statusUpdates[bookingID] != model.BookingApproved {
		t.Errorf("status update not persisted")
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0] != events.TypeBookingApproved {
		t.Errorf("expected approved event, got %v", f.publisher.events)
	}
}

func TestUpdateStatus_RejectPending(t *testing.T) {
	f := newFixture(t)
	f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return pendingBooking(), nil
	}

	booking, err := f.service.UpdateStatus(context.Background(), bookingID, "REJECTED")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != model.BookingRejected {
		t.Errorf("expected REJECTED, got %s", booking.Status)
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0] != events.TypeBookingRejected {
		t.Errorf("expected rejected event, got %v", f.publisher.events)
	}
}

func TestUpdateStatus_TerminalStatesAreFinal(t *testing.T) {
	terminal := []model.BookingStatus{model.BookingApproved, model.BookingRejected}
	targets := []string{"PENDING", "APPROVED", "REJECTED"}

	for _, from := range terminal {
		for _, to := range targets {
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				f := newFixture(t)
				f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
					b := pendingBooking()
					b.Status = from
					return b, nil
				}

				_, err := f.service.UpdateStatus(context.Background(), bookingID, to)
				appErr := wantAppError(t, err, apperrors.CodeInvalidTransition)
				if appErr.StatusCode() != 409 {
					t.Errorf("expected HTTP 409, got %d", appErr.StatusCode())
				}
				if len(f.repo.statusUpdates) != 0 {
					t.Errorf("booking must remain unchanged on invalid transition")
				}
				if len(f.publisher.events) != 0 {
					t.Errorf("no event must be published on invalid transition")
				}
			})
		}
	}
}

func TestUpdateStatus_PendingToPendingRejected(t *testing.T) {
	f := newFixture(t)
	f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return pendingBooking(), nil
	}

	_, err := f.service.UpdateStatus(context.Background(), bookingID, "PENDING")
	wantAppError(t, err, apperrors.CodeInvalidTransition)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.UpdateStatus(context.Background(), bookingID, "CANCELLED")
	wantAppError(t, err, apperrors.CodeValidation)
}

func TestUpdateStatus_UnknownBooking(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.UpdateStatus(context.Background(), "507f1f77bcf86cd799439099", "APPROVED")
	wantAppError(t, err, apperrors.CodeNotFound)
}

// ────────────────────────────────────────────────
// Delete / CheckAvailability
// ────────────────────────────────────────────────

func TestDelete_AnyStatus(t *testing.T) {
	for _, status := range []model.BookingStatus{model.BookingPending, model.BookingApproved, model.BookingRejected} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
				b := pendingBooking()
				b.Status = status
				return b, nil
			}

			if err := f.service.Delete(context.Background(), bookingID); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(f.repo.deleted) != 1 || f.repo.deleted[0] != bookingID {
				t.Errorf("delete not persisted: %v", f.repo.deleted)
			}
			if len(f.publisher.events) != 1 || f.publisher.events[0] != events.TypeBookingDeleted {
				t.Errorf("expected deleted event, got %v", f.publisher.events)
			}
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t)
	f.repo.findByResourceAndDateFunc = func(ctx context.Context, rid, date string) ([]*model.Booking, error) {
		return []*model.Booking{{
			ResourceID:  rid,
			BookingDate: date,
			TimeSlot:    "09:00 - 10:00",
			Status:      model.BookingApproved,
		}}, nil
	}

	taken, err := f.service.CheckAvailability(context.Background(), resourceID, "2026-09-01", "09:00 - 10:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if taken.Available {
		t.Errorf("expected slot to be unavailable")
	}
	if taken.ResourceID != resourceID || taken.Date != "2026-09-01" || taken.TimeSlot != "09:00 - 10:00" {
		t.Errorf("availability must echo the queried coordinates: %+v", taken)
	}

	free, err := f.service.CheckAvailability(context.Background(), resourceID, "2026-09-01", "10:00 - 11:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !free.Available {
		t.Errorf("expected adjacent slot to be available")
	}
}

func TestCheckAvailability_UnknownResource(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CheckAvailability(context.Background(), "507f1f77bcf86cd799439099", "2026-09-01", "09:00 - 10:00")
	wantAppError(t, err, apperrors.CodeNotFound)
}

func TestCheckAvailability_InvalidSlot(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CheckAvailability(context.Background(), resourceID, "2026-09-01", "23:00 - 24:00")
	wantAppError(t, err, apperrors.CodeValidation)
}

// ────────────────────────────────────────────────
// GetAll
// ────────────────────────────────────────────────

func TestGetAll_ConcurrentCountAndFind(t *testing.T) {
	f := newFixture(t)
	f.repo.countFunc = func(ctx context.Context) (int64, error) {
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	}
	f.repo.findAllFunc = func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
		time.Sleep(10 * time.Millisecond)
		return []*model.Booking{pendingBooking()}, nil
	}

	bookings, count, err := f.service.GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Errorf("expected count 42, got %d", count)
	}
	if len(bookings) != 1 {
		t.Errorf("expected 1 booking, got %d", len(bookings))
	}
}
