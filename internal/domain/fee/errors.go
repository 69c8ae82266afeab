package fee

import (
	"errors"

	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/apperr"
)

var (
	ErrFeeEntryNotFound = apperr.New(apperr.ErrNotFound, "fee entry not found")
	ErrFeeEntryExists   = apperr.New(apperr.ErrConflict, "fee entry already exists for this student, subject and month")
	ErrFeeAlreadyPaid   = apperr.New(apperr.ErrInvalidState, "fee entry is already paid")

	ErrInvalidStatus = errors.New("invalid fee status")
)
