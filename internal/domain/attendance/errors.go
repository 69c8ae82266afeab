package attendance

import "errors"

var (
	ErrStudentNotEnrolled = errors.New("student is not enrolled in the schedule's subject")
)
