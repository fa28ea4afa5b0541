package slot

import (
	"fmt"

	"crms/pkg/model"
)

// InvalidTransitionError reports an attempt to move a booking out of a
// terminal state, or into a state the lifecycle does not define.
type InvalidTransitionError struct {
	From model.BookingStatus
	To   model.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid booking status transition: %s -> %s", e.From, e.To)
}

// Transition applies the booking lifecycle: a booking starts PENDING and
// moves exactly once to APPROVED or REJECTED. Both are terminal. Any other
// change returns *InvalidTransitionError.
func Transition(from, to model.BookingStatus) (model.BookingStatus, error) {
	if from == model.BookingPending {
		switch to {
		case model.BookingApproved, model.BookingRejected:
			return to, nil
		}
	}
	return from, &InvalidTransitionError{From: from, To: to}
}
