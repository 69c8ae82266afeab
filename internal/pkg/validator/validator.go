package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/period"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns v as an error, or nil when no field failed.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidMonth checks a "YYYY-MM" billing month.
func IsValidMonth(month string) bool {
	_, err := period.ParseMonth(month)
	return err == nil
}

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidClock checks a 24h "HH:MM" time of day.
func IsValidClock(s string) bool {
	return clockRegex.MatchString(s)
}

// Itoa converts an integer to a string.
func Itoa(i int) string {
	return strconv.Itoa(i)
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Paging applies the default page and limit and records out-of-range values.
func (v *ValidationErrors) Paging(page, limit *int) {
	if *page < 0 {
		v.Add("page", "must be a positive number")
	}
	if *page == 0 {
		*page = 1
	}
	if *limit < 0 {
		v.Add("limit", "must be a positive number")
	}
	if *limit == 0 {
		*limit = DefaultLimit
	}
	if *limit > MaxLimit {
		v.Add("limit", "must not exceed "+Itoa(MaxLimit))
	}
}
