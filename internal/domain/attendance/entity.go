package attendance

import "time"

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent:
		return true
	default:
		return false
	}
}

// Attended reports whether the status counts towards the attendance rate.
func (s Status) Attended() bool {
	return s == StatusPresent || s == StatusLate
}

// Record is the presence of one student at one schedule. There is at most one
// per (ScheduleID, StudentID); marking again overwrites it.
type Record struct {
	ID         string
	ScheduleID string
	StudentID  string
	Status     Status
	Remarks    *string
	RecordedBy *string
	RecordedAt time.Time
}
