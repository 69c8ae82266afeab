package attendance

import (
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/validator"
)

type RecordInput struct {
	StudentID string  `json:"student_id" validate:"required"`
	Status    string  `json:"status" validate:"required,oneof=Present Late Absent"`
	Remarks   *string `json:"remarks,omitempty" validate:"omitempty,max=500"`
}

type MarkAttendanceRequest struct {
	ScheduleID string        `json:"-"`
	Records    []RecordInput `json:"records" validate:"required,min=1,unique=StudentID,dive"`
}

func (r *MarkAttendanceRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ScheduleID == "" {
		errs.Add("schedule_id", "is required")
	}
	return errs.Err()
}

// StudentIDs returns the student of every record in request order.
func (r *MarkAttendanceRequest) StudentIDs() []string {
	ids := make([]string, 0, len(r.Records))
	for _, rec := range r.Records {
		ids = append(ids, rec.StudentID)
	}
	return ids
}

type MarkAttendanceResponse struct {
	ScheduleID     string `json:"schedule_id"`
	Updated        int    `json:"updated"`
	ScheduleStatus string `json:"schedule_status"`
}

type RecordResponse struct {
	ID         string  `json:"id"`
	ScheduleID string  `json:"schedule_id"`
	StudentID  string  `json:"student_id"`
	Status     string  `json:"status"`
	Remarks    *string `json:"remarks,omitempty"`
	RecordedBy *string `json:"recorded_by,omitempty"`
	RecordedAt string  `json:"recorded_at"`
}

func ToResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:         r.ID,
		ScheduleID: r.ScheduleID,
		StudentID:  r.StudentID,
		Status:     string(r.Status),
		Remarks:    r.Remarks,
		RecordedBy: r.RecordedBy,
		RecordedAt: r.RecordedAt.Format(time.RFC3339),
	}
}
