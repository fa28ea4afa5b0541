package model

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func validate(t *testing.T, v any) error {
	t.Helper()
	return validator.New().Struct(v)
}

func TestUser_Validation(t *testing.T) {
	valid := User{
		Name:   "Alice Example",
		Email:  "alice@campus.edu",
		Phone:  "+15551234567",
		Role:   RoleStudent,
		Status: UserActive,
	}

	tests := []struct {
		name        string
		mutate      func(u *User)
		expectValid bool
	}{
		{"valid user", func(u *User) {}, true},
		{"phone optional", func(u *User) { u.Phone = "" }, true},
		{"valid object id", func(u *User) { u.ID = "507f1f77bcf86cd799439011" }, true},
		{"missing name", func(u *User) { u.Name = "" }, false},
		{"single char name", func(u *User) { u.Name = "A" }, false},
		{"missing email", func(u *User) { u.Email = "" }, false},
		{"malformed email", func(u *User) { u.Email = "not-an-email" }, false},
		{"non e164 phone", func(u *User) { u.Phone = "555-1234" }, false},
		{"unknown role", func(u *User) { u.Role = "JANITOR" }, false},
		{"lowercase role", func(u *User) { u.Role = "admin" }, false},
		{"unknown status", func(u *User) { u.Status = "SUSPENDED" }, false},
		{"malformed id", func(u *User) { u.ID = "abc123" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := valid
			tt.mutate(&u)
			err := validate(t, &u)
			if (err == nil) != tt.expectValid {
				t.Errorf("expectValid=%v, got err=%v", tt.expectValid, err)
			}
		})
	}
}

func TestResource_Validation(t *testing.T) {
	valid := Resource{
		Name:     "Physics Lab",
		Type:     Lab,
		Capacity: 30,
		Status:   ResourceAvailable,
	}

	tests := []struct {
		name        string
		mutate      func(r *Resource)
		expectValid bool
	}{
		{"valid resource", func(r *Resource) {}, true},
		{"event hall", func(r *Resource) { r.Type = EventHall }, true},
		{"missing name", func(r *Resource) { r.Name = "" }, false},
		{"unknown type", func(r *Resource) { r.Type = "GYM" }, false},
		{"zero capacity", func(r *Resource) { r.Capacity = 0 }, false},
		{"negative capacity", func(r *Resource) { r.Capacity = -5 }, false},
		{"unknown status", func(r *Resource) { r.Status = "CLOSED" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := validate(t, &r)
			if (err == nil) != tt.expectValid {
				t.Errorf("expectValid=%v, got err=%v", tt.expectValid, err)
			}
		})
	}
}

func TestBooking_Validation(t *testing.T) {
	valid := Booking{
		UserID:      "507f1f77bcf86cd799439011",
		ResourceID:  "507f1f77bcf86cd799439021",
		BookingDate: "2026-09-01",
		TimeSlot:    "09:00 - 10:00",
		Status:      BookingPending,
	}

	tests := []struct {
		name        string
		mutate      func(b *Booking)
		expectValid bool
	}{
		{"valid booking", func(b *Booking) {}, true},
		{"missing user", func(b *Booking) { b.UserID = "" }, false},
		{"missing resource", func(b *Booking) { b.ResourceID = "" }, false},
		{"malformed user id", func(b *Booking) { b.UserID = "user-1" }, false},
		{"missing date", func(b *Booking) { b.BookingDate = "" }, false},
		{"reversed date", func(b *Booking) { b.BookingDate = "01-09-2026" }, false},
		{"date with time", func(b *Booking) { b.BookingDate = "2026-09-01T09:00:00Z" }, false},
		{"missing slot", func(b *Booking) { b.TimeSlot = "" }, false},
		{"unknown status", func(b *Booking) { b.Status = "CANCELLED" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			err := validate(t, &b)
			if (err == nil) != tt.expectValid {
				t.Errorf("expectValid=%v, got err=%v", tt.expectValid, err)
			}
		})
	}
}
