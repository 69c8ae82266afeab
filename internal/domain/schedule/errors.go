package schedule

import (
	"errors"

	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/apperr"
)

var (
	ErrScheduleNotFound  = apperr.New(apperr.ErrNotFound, "class schedule not found")
	ErrInvalidTransition = apperr.New(apperr.ErrInvalidState, "schedule status transition not allowed")

	// Validation Errors
	ErrInvalidStatus     = errors.New("invalid schedule status")
	ErrInvalidTimeWindow = errors.New("end_time must be after start_time")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

var (
	ErrSubjectNotInClass = errors.New("subject does not belong to the class")
	ErrTutorNotAssigned  = errors.New("tutor is not the subject's assigned tutor")
)
