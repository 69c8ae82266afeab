package analytics

import "time"

// Scope narrows attendance analytics. Empty fields match everything.
type Scope struct {
	ClassID   *string
	SubjectID *string
	TutorID   *string
}

// DailyCount is the attendance tally of one calendar day. Days without any
// attendance rows are never returned by the repository.
type DailyCount struct {
	Date     time.Time
	Attended int64 // Present + Late
	Total    int64
}

// DayPoint is one bar of the weekly chart.
type DayPoint struct {
	Date       time.Time
	Percentage int
	HasData    bool
	Attended   int64
	Total      int64
}
