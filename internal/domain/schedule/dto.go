package schedule

import (
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/validator"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = time.RFC3339
)

type CreateScheduleRequest struct {
	ClassID   string  `json:"class_id" validate:"required"`
	SubjectID string  `json:"subject_id" validate:"required"`
	TutorID   string  `json:"tutor_id" validate:"required"`
	Date      string  `json:"date" validate:"required,date"`
	StartTime string  `json:"start_time" validate:"required,clock"`
	EndTime   string  `json:"end_time" validate:"required,clock"`
	Status    string  `json:"status" validate:"omitempty,oneof=Upcoming Completed Cancelled Postponed"`
	Room      *string `json:"room,omitempty" validate:"omitempty,max=100"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func (r *CreateScheduleRequest) Validate() error {
	errs := validator.Struct(r)

	if IsClock(r.StartTime) && IsClock(r.EndTime) && !ValidWindow(r.StartTime, r.EndTime) {
		errs.Add("end_time", ErrInvalidTimeWindow.Error())
	}
	if r.Status == "" {
		r.Status = string(StatusUpcoming)
	}

	return errs.Err()
}

// ParsedDate returns Date as a UTC calendar day. Call after Validate.
func (r *CreateScheduleRequest) ParsedDate() time.Time {
	d, _ := time.Parse(DateLayout, r.Date)
	return d
}

type UpdateScheduleRequest struct {
	ID        string  `json:"-"`
	Date      *string `json:"date,omitempty" validate:"omitempty,date"`
	StartTime *string `json:"start_time,omitempty" validate:"omitempty,clock"`
	EndTime   *string `json:"end_time,omitempty" validate:"omitempty,clock"`
	TutorID   *string `json:"tutor_id,omitempty" validate:"omitempty,min=1"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=Upcoming Completed Cancelled Postponed"`
	Room      *string `json:"room,omitempty" validate:"omitempty,max=100"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// Validate checks field formats only. The time window is checked against the
// merged schedule, since only one side of it may be supplied.
func (r *UpdateScheduleRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ID == "" {
		errs.Add("id", "is required")
	}
	return errs.Err()
}

// Apply merges the supplied fields into s and re-checks the schedule invariants.
func (r *UpdateScheduleRequest) Apply(s *ClassSchedule) error {
	if r.Date != nil {
		d, err := time.Parse(DateLayout, *r.Date)
		if err != nil {
			return validator.ValidationErrors{{Field: "date", Message: ErrInvalidDateFormat.Error()}}
		}
		s.Date = d
	}
	if r.StartTime != nil {
		s.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		s.EndTime = *r.EndTime
	}
	if !ValidWindow(s.StartTime, s.EndTime) {
		return validator.ValidationErrors{{Field: "end_time", Message: ErrInvalidTimeWindow.Error()}}
	}
	if r.TutorID != nil {
		s.TutorID = *r.TutorID
	}
	if r.Room != nil {
		s.Room = r.Room
	}
	if r.Notes != nil {
		s.Notes = r.Notes
	}
	if r.Status != nil {
		if err := s.TransitionTo(Status(*r.Status)); err != nil {
			return err
		}
	}
	return nil
}

type ScheduleFilter struct {
	From      *string `json:"from,omitempty" validate:"omitempty,date"`
	To        *string `json:"to,omitempty" validate:"omitempty,date"`
	ClassID   *string `json:"class_id,omitempty"`
	SubjectID *string `json:"subject_id,omitempty"`
	TutorID   *string `json:"tutor_id,omitempty"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=Upcoming Completed Cancelled Postponed"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ScheduleFilter) Validate() error {
	errs := validator.Struct(f)
	errs.Paging(&f.Page, &f.Limit)
	if f.From != nil && f.To != nil && *f.To < *f.From {
		errs.Add("to", "must not be before from")
	}
	return errs.Err()
}

type ScheduleResponse struct {
	ID        string  `json:"id"`
	ClassID   string  `json:"class_id"`
	SubjectID string  `json:"subject_id"`
	TutorID   string  `json:"tutor_id"`
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Status    string  `json:"status"`
	Room      *string `json:"room,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	CreatedBy *string `json:"created_by,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type ListScheduleResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Schedules  []ScheduleResponse `json:"schedules"`
}

func ToResponse(s ClassSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:        s.ID,
		ClassID:   s.ClassID,
		SubjectID: s.SubjectID,
		TutorID:   s.TutorID,
		Date:      s.Date.Format(DateLayout),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Status:    string(s.Status),
		Room:      s.Room,
		Notes:     s.Notes,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt.Format(TimestampLayout),
		UpdatedAt: s.UpdatedAt.Format(TimestampLayout),
	}
}

// IsClock reports whether s is a 24h "HH:MM" time.
func IsClock(s string) bool {
	return validator.IsValidClock(s)
}
