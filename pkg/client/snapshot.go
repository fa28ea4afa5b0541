package client

import (
	"context"
	"net/http"
	"sync"

	"crms/pkg/logger"
	"crms/pkg/model"
)

// Snapshot is one consistent-enough view of the three collections, loaded
// concurrently. It is what screen-level consumers render from and what the
// advisory slot evaluator runs against.
type Snapshot struct {
	Users     []*model.User
	Resources []*model.Resource
	Bookings  []*model.Booking
}

// Loader fetches the full data set from the API in one shot.
type Loader struct {
	users     *UserClient
	resources *ResourceClient
	bookings  *BookingClient
	log       *logger.Logger
}

func NewLoader(baseURL string, log *logger.Logger) *Loader {
	return &Loader{
		users:     NewUserClient(baseURL),
		resources: NewResourceClient(baseURL),
		bookings:  NewBookingClient(baseURL),
		log:       log,
	}
}

// LoadAll issues the three list fetches concurrently and waits for all of
// them. A failed fetch degrades to an empty list rather than failing the
// snapshot; partial data beats a blank screen. Each fetch is a single
// attempt, no retry.
func (l *Loader) LoadAll(ctx context.Context) *Snapshot {
	snapshot := &Snapshot{}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		resp, err := l.users.GetAll(ctx)
		if err != nil || resp.StatusCode != http.StatusOK {
			l.warn("users", resp, err)
			return
		}
		users, err := l.users.DecodeUsers(resp)
		if err != nil {
			l.warn("users", resp, err)
			return
		}
		snapshot.Users = users
	}()

	go func() {
		defer wg.Done()
		resp, err := l.resources.GetAll(ctx)
		if err != nil || resp.StatusCode != http.StatusOK {
			l.warn("resources", resp, err)
			return
		}
		resources, err := l.resources.DecodeResources(resp)
		if err != nil {
			l.warn("resources", resp, err)
			return
		}
		snapshot.Resources = resources
	}()

	go func() {
		defer wg.Done()
		resp, err := l.bookings.GetAll(ctx)
		if err != nil || resp.StatusCode != http.StatusOK {
			l.warn("bookings", resp, err)
			return
		}
		bookings, err := l.bookings.DecodeBookings(resp)
		if err != nil {
			l.warn("bookings", resp, err)
			return
		}
		snapshot.Bookings = bookings
	}()

	wg.Wait()

	if snapshot.Users == nil {
		snapshot.Users = []*model.User{}
	}
	if snapshot.Resources == nil {
		snapshot.Resources = []*model.Resource{}
	}
	if snapshot.Bookings == nil {
		snapshot.Bookings = []*model.Booking{}
	}

	return snapshot
}

func (l *Loader) warn(collection string, resp *Response, err error) {
	if l.log == nil {
		return
	}
	args := []any{"collection", collection}
	if err != nil {
		args = append(args, "error", err)
	}
	if resp != nil {
		args = append(args, "status", resp.StatusCode)
	}
	l.log.Warn("Snapshot fetch failed, degrading to empty list", args...)
}
