package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/apperr"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/validator"
)

type ScheduleServiceImpl struct {
	scheduleRepo schedule.ScheduleRepository
	rosterRepo   roster.RosterRepository
	metrics      *metrics.Metrics
}

func NewScheduleService(
	scheduleRepo schedule.ScheduleRepository,
	rosterRepo roster.RosterRepository,
	m *metrics.Metrics,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		scheduleRepo: scheduleRepo,
		rosterRepo:   rosterRepo,
		metrics:      m,
	}
}

func (s *ScheduleServiceImpl) CreateSchedule(ctx context.Context, actor user.Actor, req schedule.CreateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := actor.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}
	if err := s.checkReferences(ctx, req.ClassID, req.SubjectID, req.TutorID); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	createdBy := actor.UserID
	created, err := s.scheduleRepo.Create(ctx, schedule.ClassSchedule{
		ClassID:   req.ClassID,
		SubjectID: req.SubjectID,
		TutorID:   req.TutorID,
		Date:      req.ParsedDate(),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    schedule.Status(req.Status),
		Room:      req.Room,
		Notes:     req.Notes,
		CreatedBy: &createdBy,
	})
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to create class schedule: %w", err)
	}

	s.metrics.ScheduleChanged("create")
	slog.Info("Created class schedule", "schedule_id", created.ID, "date", req.Date, "actor", actor.String())
	return schedule.ToResponse(created), nil
}

func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context, id string) (schedule.ScheduleResponse, error) {
	sch, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	return schedule.ToResponse(sch), nil
}

func (s *ScheduleServiceImpl) ListSchedules(ctx context.Context, filter schedule.ScheduleFilter) (schedule.ListScheduleResponse, error) {
	if err := filter.Validate(); err != nil {
		return schedule.ListScheduleResponse{}, err
	}

	schedules, total, err := s.scheduleRepo.List(ctx, filter)
	if err != nil {
		return schedule.ListScheduleResponse{}, err
	}

	resp := schedule.ListScheduleResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
		Schedules:  make([]schedule.ScheduleResponse, 0, len(schedules)),
	}
	for _, sch := range schedules {
		resp.Schedules = append(resp.Schedules, schedule.ToResponse(sch))
	}
	return resp, nil
}

func (s *ScheduleServiceImpl) UpdateSchedule(ctx context.Context, actor user.Actor, req schedule.UpdateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := actor.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	if req.TutorID != nil {
		current, err := s.scheduleRepo.GetByID(ctx, req.ID)
		if err != nil {
			return schedule.ScheduleResponse{}, err
		}
		if err := s.checkReferences(ctx, current.ClassID, current.SubjectID, *req.TutorID); err != nil {
			return schedule.ScheduleResponse{}, err
		}
	}

	var previous schedule.Status
	updated, err := s.scheduleRepo.Update(ctx, req.ID, func(sch *schedule.ClassSchedule) error {
		previous = sch.Status
		return req.Apply(sch)
	})
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	s.metrics.ScheduleChanged("update")
	if previous != updated.Status {
		slog.Info("Class schedule status changed", "schedule_id", updated.ID, "from", previous, "to", updated.Status, "actor", actor.String())
	}
	return schedule.ToResponse(updated), nil
}

// DeleteSchedule is irreversible: the schedule's attendance records go with it.
func (s *ScheduleServiceImpl) DeleteSchedule(ctx context.Context, actor user.Actor, id string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.metrics.ScheduleChanged("delete")
	slog.Info("Deleted class schedule", "schedule_id", id, "actor", actor.String())
	return nil
}

// checkReferences reports unknown or mismatched class/subject/tutor references
// as validation errors on the offending field.
func (s *ScheduleServiceImpl) checkReferences(ctx context.Context, classID, subjectID, tutorID string) error {
	var errs validator.ValidationErrors

	if _, err := s.rosterRepo.GetClass(ctx, classID); err != nil {
		if !apperr.IsNotFound(err) {
			return err
		}
		errs.Add("class_id", roster.ErrClassNotFound.Error())
	}

	subject, err := s.rosterRepo.GetSubject(ctx, subjectID)
	switch {
	case err == nil:
		if subject.ClassID != classID {
			errs.Add("subject_id", schedule.ErrSubjectNotInClass.Error())
		}
		if subject.TutorID != nil && *subject.TutorID != tutorID {
			errs.Add("tutor_id", schedule.ErrTutorNotAssigned.Error())
		}
	case errors.Is(err, roster.ErrSubjectNotFound):
		errs.Add("subject_id", err.Error())
	default:
		return err
	}

	if _, err := s.rosterRepo.GetTutor(ctx, tutorID); err != nil {
		if !apperr.IsNotFound(err) {
			return err
		}
		errs.Add("tutor_id", roster.ErrTutorNotFound.Error())
	}

	return errs.Err()
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
