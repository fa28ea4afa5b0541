package slot

import "crms/pkg/model"

// IsActive reports whether a booking with the given status occupies its
// slot. Rejected bookings free the slot for rebooking.
func IsActive(status model.BookingStatus) bool {
	return status == model.BookingPending || status == model.BookingApproved
}

// IsSlotAvailable reports whether the (resourceID, date, timeSlot) triple is
// free in the given snapshot: false iff some booking matches all three keys
// and is PENDING or APPROVED.
//
// Malformed input simply matches nothing and yields true. Callers wanting
// stricter behavior validate the date format and catalog membership before
// calling.
func IsSlotAvailable(bookings []*model.Booking, resourceID, date, timeSlot string) bool {
	for _, b := range bookings {
		if b == nil {
			continue
		}
		if b.ResourceID == resourceID && b.BookingDate == date && b.TimeSlot == timeSlot && IsActive(b.Status) {
			return false
		}
	}
	return true
}
