package payroll

import (
	"errors"

	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/apperr"
)

var (
	ErrSalaryEntryNotFound = apperr.New(apperr.ErrNotFound, "salary entry not found")
	ErrSalaryEntryExists   = apperr.New(apperr.ErrConflict, "salary entry already exists for this tutor and month")
	ErrSalaryAlreadyPaid   = apperr.New(apperr.ErrInvalidState, "salary entry already paid")
	ErrPaidSalaryImmutable = apperr.New(apperr.ErrInvalidState, "salary entry already paid, cannot modify amounts")

	ErrInvalidStatus = errors.New("invalid salary status")
)
