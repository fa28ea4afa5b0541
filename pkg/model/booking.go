package model

import "time"

type BookingStatus string

const (
	BookingPending  BookingStatus = "PENDING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

// Booking occupies one slot: a (resource, date, time-slot) triple. The date
// is a plain calendar day with no time component.
type Booking struct {
	ID          string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID      string        `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	ResourceID  string        `json:"resource_id" bson:"resource_id" validate:"required,mongodb"`
	BookingDate string        `json:"booking_date" bson:"booking_date" validate:"required,datetime=2006-01-02"`
	TimeSlot    string        `json:"time_slot" bson:"time_slot" validate:"required"`
	Status      BookingStatus `json:"status" bson:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingRequest is the create payload; owner and resource arrive as query
// parameters and the status is assigned server-side.
type BookingRequest struct {
	BookingDate string `json:"bookingDate" validate:"required,datetime=2006-01-02"`
	TimeSlot    string `json:"timeSlot" validate:"required"`
}

// Availability is the check-availability response payload.
type Availability struct {
	Available  bool   `json:"available"`
	ResourceID string `json:"resourceId"`
	Date       string `json:"date"`
	TimeSlot   string `json:"timeSlot"`
}
