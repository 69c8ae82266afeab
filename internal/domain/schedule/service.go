package schedule

import (
	"context"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
)

type ScheduleService interface {
	CreateSchedule(ctx context.Context, actor user.Actor, req CreateScheduleRequest) (ScheduleResponse, error)
	GetSchedule(ctx context.Context, id string) (ScheduleResponse, error)
	ListSchedules(ctx context.Context, filter ScheduleFilter) (ListScheduleResponse, error)
	UpdateSchedule(ctx context.Context, actor user.Actor, req UpdateScheduleRequest) (ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, actor user.Actor, id string) error
}
