package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"crms/pkg/logger"
	"crms/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	slots    model.TimeSlotCatalog
	log      *logger.Logger
}

func NewBookingValidator(slots model.TimeSlotCatalog, log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		slots:    slots,
		log:      log,
	}
}

// ValidateRequest checks the create payload: well-formed date and a time
// slot from the configured catalog. Slot labels must match exactly,
// including spacing.
func (v *BookingValidator) ValidateRequest(req *model.BookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	return v.ValidateSlot(req.BookingDate, req.TimeSlot)
}

// ValidateSlot checks a (date, timeSlot) pair outside of a create payload,
// as used by the availability endpoint.
func (v *BookingValidator) ValidateSlot(date, timeSlot string) error {
	var errs ValidationErrors

	if _, err := time.Parse("2006-01-02", date); err != nil {
		errs = append(errs, ValidationError{
			Field:   "bookingDate",
			Message: "must be a calendar date in YYYY-MM-DD format",
		})
	}

	if !v.slots.Contains(timeSlot) {
		errs = append(errs, ValidationError{
			Field:   "timeSlot",
			Message: fmt.Sprintf("%q is not a recognized time slot", timeSlot),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *BookingValidator) ValidateStatus(status string) error {
	switch model.BookingStatus(status) {
	case model.BookingPending, model.BookingApproved, model.BookingRejected:
		return nil
	}
	return ValidationErrors{
		ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("%q is not a valid booking status", status),
		},
	}
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors
	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: fmt.Sprintf("failed on '%s' rule", err.Tag()),
		})
	}
	return validationErrors
}
