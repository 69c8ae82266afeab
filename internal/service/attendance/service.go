package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	scheduleRepo   schedule.ScheduleRepository
	rosterRepo     roster.RosterRepository
	metrics        *metrics.Metrics
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	scheduleRepo schedule.ScheduleRepository,
	rosterRepo roster.RosterRepository,
	m *metrics.Metrics,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		rosterRepo:     rosterRepo,
		metrics:        m,
	}
}

// MarkAttendance writes the whole roll call in one transaction: either every
// record is stored (and an Upcoming schedule becomes Completed) or none is.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, actor user.Actor, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResponse, error) {
	if err := actor.Validate(); err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}

	sch, err := s.scheduleRepo.GetByID(ctx, req.ScheduleID)
	if err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}

	enrolled, err := s.rosterRepo.EnrolledStudentIDs(ctx, sch.SubjectID, req.StudentIDs())
	if err != nil {
		return attendance.MarkAttendanceResponse{}, fmt.Errorf("failed to check enrollments: %w", err)
	}

	var errs validator.ValidationErrors
	recordedBy := actor.UserID
	records := make([]attendance.Record, 0, len(req.Records))
	for i, in := range req.Records {
		if !enrolled[in.StudentID] {
			errs.Add(fmt.Sprintf("records[%d].student_id", i), attendance.ErrStudentNotEnrolled.Error())
			continue
		}
		records = append(records, attendance.Record{
			ScheduleID: sch.ID,
			StudentID:  in.StudentID,
			Status:     attendance.Status(in.Status),
			Remarks:    in.Remarks,
			RecordedBy: &recordedBy,
		})
	}
	if err := errs.Err(); err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}

	status, err := s.attendanceRepo.Mark(ctx, sch.ID, records)
	if err != nil {
		return attendance.MarkAttendanceResponse{}, err
	}

	s.metrics.AttendanceMarked(len(records))
	if sch.Status != status {
		slog.Info("Class schedule completed by attendance", "schedule_id", sch.ID, "from", sch.Status, "to", status)
	}
	slog.Info("Marked attendance", "schedule_id", sch.ID, "records", len(records), "actor", actor.String())

	return attendance.MarkAttendanceResponse{
		ScheduleID:     sch.ID,
		Updated:        len(records),
		ScheduleStatus: string(status),
	}, nil
}

func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, scheduleID string) ([]attendance.RecordResponse, error) {
	records, err := s.attendanceRepo.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	resp := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, attendance.ToResponse(r))
	}
	return resp, nil
}
