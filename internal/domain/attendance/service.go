package attendance

import (
	"context"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
)

type AttendanceService interface {
	MarkAttendance(ctx context.Context, actor user.Actor, req MarkAttendanceRequest) (MarkAttendanceResponse, error)
	ListAttendance(ctx context.Context, scheduleID string) ([]RecordResponse, error)
}
