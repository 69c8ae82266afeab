package schedule

import "time"

type Status string

const (
	StatusUpcoming  Status = "Upcoming"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
	StatusPostponed Status = "Postponed"
)

var StatusValues = []string{
	string(StatusUpcoming),
	string(StatusCompleted),
	string(StatusCancelled),
	string(StatusPostponed),
}

func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusCancelled, StatusPostponed:
		return true
	default:
		return false
	}
}

// transitions lists the explicit edits allowed from each state. Completed is
// normally reached by marking attendance; listing it here is the admin override.
var transitions = map[Status][]Status{
	StatusUpcoming:  {StatusCompleted, StatusCancelled, StatusPostponed},
	StatusCancelled: {StatusUpcoming},
	StatusPostponed: {StatusUpcoming},
	StatusCompleted: {StatusUpcoming},
}

// CanTransitionTo reports whether an explicit edit may move s to next.
// Staying in the same state is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ClassSchedule is one class session: class x subject x tutor on a date within a time window.
type ClassSchedule struct {
	ID        string
	ClassID   string
	SubjectID string
	TutorID   string
	Date      time.Time
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
	Status    Status
	Room      *string
	Notes     *string
	CreatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidWindow reports whether end is strictly after start. Both are zero-padded
// "HH:MM" strings, so lexical order is chronological order.
func ValidWindow(start, end string) bool {
	return end > start
}

// TransitionTo moves the schedule to next if the state machine allows it.
func (s *ClassSchedule) TransitionTo(next Status) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	if !s.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	s.Status = next
	return nil
}
