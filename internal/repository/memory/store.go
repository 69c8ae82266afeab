// Package memory is an in-process implementation of every repository
// interface. It enforces the same uniqueness and compare-and-set rules as the
// PostgreSQL store and backs the development driver and the service tests.
package memory

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/fee"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/schedule"
	"github.com/google/uuid"
)

type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	classes     map[string]roster.Class
	subjects    map[string]roster.Subject
	tutors      map[string]roster.Tutor
	students    map[string]roster.Student
	enrollments map[string]map[string]bool // student -> subjects

	schedules  map[string]schedule.ClassSchedule
	attendance map[string]map[string]attendance.Record // schedule -> student -> record

	fees       map[string]fee.FeeEntry
	feeKeys    map[string]string // student|subject|month -> id
	salaries   map[string]payroll.SalaryEntry
	salaryKeys map[string]string // tutor|month -> id
}

func NewStore() *Store {
	return &Store{
		now:         time.Now,
		classes:     make(map[string]roster.Class),
		subjects:    make(map[string]roster.Subject),
		tutors:      make(map[string]roster.Tutor),
		students:    make(map[string]roster.Student),
		enrollments: make(map[string]map[string]bool),
		schedules:   make(map[string]schedule.ClassSchedule),
		attendance:  make(map[string]map[string]attendance.Record),
		fees:        make(map[string]fee.FeeEntry),
		feeKeys:     make(map[string]string),
		salaries:    make(map[string]payroll.SalaryEntry),
		salaryKeys:  make(map[string]string),
	}
}

// SetClock overrides the time source used for audit timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func matches(want *string, got string) bool {
	return want == nil || *want == "" || *want == got
}
