package roster

import "context"

// RosterRepository is the read-only view of the student/tutor/class reference
// data owned by the profile service.
type RosterRepository interface {
	GetClass(ctx context.Context, id string) (Class, error)
	GetSubject(ctx context.Context, id string) (Subject, error)
	GetTutor(ctx context.Context, id string) (Tutor, error)

	// ActiveEnrollments returns every active student with their current subjects.
	ActiveEnrollments(ctx context.Context) ([]Enrollment, error)
	// ActiveTutors returns every active tutor with their current base salary.
	ActiveTutors(ctx context.Context) ([]Tutor, error)
	// EnrolledStudentIDs returns the subset of studentIDs enrolled in subjectID.
	EnrolledStudentIDs(ctx context.Context, subjectID string, studentIDs []string) (map[string]bool, error)
}
