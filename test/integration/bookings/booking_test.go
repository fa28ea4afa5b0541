package bookings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"crms/pkg/model"
	"crms/test/common"
)

func futureDate() string {
	return time.Now().AddDate(0, 1, 0).Format("2006-01-02")
}

func TestBookingLifecycle(t *testing.T) {
	suite := common.NewIntegrationTestSuite(t)
	ctx := context.Background()

	student := common.MustCreateUser(t, suite.Users, &model.User{
		Name:  "Integration Student",
		Email: fmt.Sprintf("student+%d@campus.edu", time.Now().UnixNano()),
		Role:  model.RoleStudent,
	})
	lab := common.MustCreateResource(t, suite.Resources, &model.Resource{
		Name:     fmt.Sprintf("Integration Lab %d", time.Now().UnixNano()),
		Type:     model.Lab,
		Capacity: 20,
	})

	date := futureDate()
	const slot = "09:00 - 10:00"

	// Slot starts free.
	resp, err := suite.Bookings.CheckAvailability(ctx, lab.ID, date, slot)
	if err != nil {
		t.Fatalf("availability check failed: %v", err)
	}
	avail, err := suite.Bookings.DecodeAvailability(resp)
	if err != nil {
		t.Fatalf("failed to decode availability: %v", err)
	}
	if !avail.Available {
		t.Fatalf("expected fresh slot to be available")
	}

	// Student booking starts pending.
	resp, err = suite.Bookings.Create(ctx, student.ID, lab.ID, &model.BookingRequest{
		BookingDate: date,
		TimeSlot:    slot,
	})
	if err != nil {
		t.Fatalf("booking create failed: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, resp.ToString())
	}
	booking, err := suite.Bookings.DecodeBooking(resp)
	if err != nil {
		t.Fatalf("failed to decode booking: %v", err)
	}
	t.Cleanup(func() {
		_, _ = suite.Bookings.Delete(ctx, booking.ID)
	})
	if booking.Status != model.BookingPending {
		t.Errorf("expected PENDING, got %s", booking.Status)
	}

	// The occupied slot now conflicts.
	resp, err = suite.Bookings.Create(ctx, student.ID, lab.ID, &model.BookingRequest{
		BookingDate: date,
		TimeSlot:    slot,
	})
	if err != nil {
		t.Fatalf("conflicting create request failed: %v", err)
	}
	if resp.StatusCode != 409 {
		t.Errorf("expected 409 for double booking, got %d", resp.StatusCode)
	}

	// Approve, then verify terminal state is enforced.
	resp, err = suite.Bookings.UpdateStatus(ctx, booking.ID, model.BookingApproved)
	if err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 approving booking, got %d: %s", resp.StatusCode, resp.ToString())
	}

	resp, err = suite.Bookings.UpdateStatus(ctx, booking.ID, model.BookingRejected)
	if err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	if resp.StatusCode != 409 {
		t.Errorf("expected 409 rejecting an approved booking, got %d", resp.StatusCode)
	}

	// The slot stays blocked while approved.
	resp, err = suite.Bookings.CheckAvailability(ctx, lab.ID, date, slot)
	if err != nil {
		t.Fatalf("availability check failed: %v", err)
	}
	avail, err = suite.Bookings.DecodeAvailability(resp)
	if err != nil {
		t.Fatalf("failed to decode availability: %v", err)
	}
	if avail.Available {
		t.Errorf("approved booking must block its slot")
	}
}

func TestAdminBookingAutoApproved(t *testing.T) {
	suite := common.NewIntegrationTestSuite(t)
	ctx := context.Background()

	admin := common.MustCreateUser(t, suite.Users, &model.User{
		Name:  "Integration Admin",
		Email: fmt.Sprintf("admin+%d@campus.edu", time.Now().UnixNano()),
		Role:  model.RoleAdmin,
	})
	hall := common.MustCreateResource(t, suite.Resources, &model.Resource{
		Name:     fmt.Sprintf("Integration Hall %d", time.Now().UnixNano()),
		Type:     model.EventHall,
		Capacity: 200,
	})

	resp, err := suite.Bookings.Create(ctx, admin.ID, hall.ID, &model.BookingRequest{
		BookingDate: futureDate(),
		TimeSlot:    "10:00 - 11:00",
	})
	if err != nil {
		t.Fatalf("booking create failed: %v", err)
	}
	booking, err := suite.Bookings.DecodeBooking(resp)
	if err != nil {
		t.Fatalf("failed to decode booking: %v", err)
	}
	t.Cleanup(func() {
		_, _ = suite.Bookings.Delete(ctx, booking.ID)
	})

	if booking.Status != model.BookingApproved {
		t.Errorf("admin booking must be auto-approved, got %s", booking.Status)
	}
}
