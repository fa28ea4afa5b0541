package validator

import (
	"errors"
	"fmt"
	"strings"

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

type ResourceValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewResourceValidator(log *logger.Logger) *ResourceValidator {
	return &ResourceValidator{
		validate: validator.New(),
		log:      log,
	}
}

func (v *ResourceValidator) Validate(resource *model.Resource) error {
	return v.translate(v.validate.Struct(resource))
}

func (v *ResourceValidator) ValidateUpdate(update *model.ResourceUpdate) error {
	return v.translate(v.validate.Struct(update))
}

func (v *ResourceValidator) translate(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		var out ValidationErrors
		for _, fieldErr := range validationErrs {
			out = append(out, ValidationError{
				Field:   fieldErr.Field(),
				Message: fmt.Sprintf("failed on '%s' rule", fieldErr.Tag()),
			})
		}
		return out
	}
	return err
}
