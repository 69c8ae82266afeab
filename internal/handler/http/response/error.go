package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/apperr"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Caller identity
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrInvalidTokenType),
		errors.Is(err, user.ErrActorRequired), errors.Is(err, user.ErrInvalidRole):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrInsufficientPermissions), errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())

	// Error kinds shared by every domain
	case apperr.IsNotFound(err):
		NotFound(w, err.Error())
	case apperr.IsConflict(err):
		Conflict(w, err.Error())
	case apperr.IsInvalidState(err):
		InvalidState(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
