package schedule

import "context"

type ScheduleRepository interface {
	Create(ctx context.Context, s ClassSchedule) (ClassSchedule, error)
	GetByID(ctx context.Context, id string) (ClassSchedule, error)
	List(ctx context.Context, filter ScheduleFilter) ([]ClassSchedule, int64, error)
	// Update loads the schedule under a row lock, applies fn and persists the
	// result. If fn returns an error nothing is written.
	Update(ctx context.Context, id string, fn func(*ClassSchedule) error) (ClassSchedule, error)
	// Delete removes the schedule together with its attendance records.
	Delete(ctx context.Context, id string) error
}
