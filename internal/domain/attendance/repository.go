package attendance

import (
	"context"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/schedule"
)

type AttendanceRepository interface {
	// Mark upserts records on (schedule, student) and moves an Upcoming
	// schedule to Completed, all in one transaction. It returns the schedule
	// status after the call, or schedule.ErrScheduleNotFound.
	Mark(ctx context.Context, scheduleID string, records []Record) (schedule.Status, error)
	ListBySchedule(ctx context.Context, scheduleID string) ([]Record, error)
}
