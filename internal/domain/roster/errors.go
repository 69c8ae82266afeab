package roster

import "github.com/cmlabs-hris/tuition-backend-go/internal/pkg/apperr"

var (
	ErrClassNotFound   = apperr.New(apperr.ErrNotFound, "class not found")
	ErrSubjectNotFound = apperr.New(apperr.ErrNotFound, "subject not found")
	ErrTutorNotFound   = apperr.New(apperr.ErrNotFound, "tutor not found")
)
