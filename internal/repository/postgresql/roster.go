package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/database"
)

type rosterRepository struct {
	db *database.DB
}

func NewRosterRepository(db *database.DB) roster.RosterRepository {
	return &rosterRepository{db: db}
}

func (r *rosterRepository) GetClass(ctx context.Context, id string) (roster.Class, error) {
	q := GetQuerier(ctx, r.db)

	var c roster.Class
	err := q.QueryRow(ctx, `SELECT id, name FROM classes WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if isNoRows(err) {
			return roster.Class{}, roster.ErrClassNotFound
		}
		return roster.Class{}, fmt.Errorf("failed to get class: %w", err)
	}
	return c, nil
}

func (r *rosterRepository) GetSubject(ctx context.Context, id string) (roster.Subject, error) {
	q := GetQuerier(ctx, r.db)

	var s roster.Subject
	err := q.QueryRow(ctx, `
		SELECT id, class_id, name, tutor_id, monthly_fee
		FROM subjects WHERE id = $1
	`, id).Scan(&s.ID, &s.ClassID, &s.Name, &s.TutorID, &s.MonthlyFee)
	if err != nil {
		if isNoRows(err) {
			return roster.Subject{}, roster.ErrSubjectNotFound
		}
		return roster.Subject{}, fmt.Errorf("failed to get subject: %w", err)
	}
	return s, nil
}

func (r *rosterRepository) GetTutor(ctx context.Context, id string) (roster.Tutor, error) {
	q := GetQuerier(ctx, r.db)

	var t roster.Tutor
	err := q.QueryRow(ctx, `
		SELECT id, full_name, base_salary, is_active
		FROM tutors WHERE id = $1
	`, id).Scan(&t.ID, &t.FullName, &t.BaseSalary, &t.IsActive)
	if err != nil {
		if isNoRows(err) {
			return roster.Tutor{}, roster.ErrTutorNotFound
		}
		return roster.Tutor{}, fmt.Errorf("failed to get tutor: %w", err)
	}
	return t, nil
}

func (r *rosterRepository) ActiveEnrollments(ctx context.Context) ([]roster.Enrollment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT st.id, st.full_name, su.id, su.class_id, su.name, su.tutor_id, su.monthly_fee
		FROM students st
		JOIN enrollments e ON e.student_id = st.id
		JOIN subjects su ON su.id = e.subject_id
		WHERE st.is_active
		ORDER BY st.id, su.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []roster.Enrollment
	for rows.Next() {
		var (
			st  = roster.Student{IsActive: true}
			sub roster.Subject
		)
		if err := rows.Scan(&st.ID, &st.FullName, &sub.ID, &sub.ClassID, &sub.Name, &sub.TutorID, &sub.MonthlyFee); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		if n := len(enrollments); n == 0 || enrollments[n-1].Student.ID != st.ID {
			enrollments = append(enrollments, roster.Enrollment{Student: st})
		}
		last := &enrollments[len(enrollments)-1]
		last.Subjects = append(last.Subjects, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate enrollments: %w", err)
	}
	return enrollments, nil
}

func (r *rosterRepository) ActiveTutors(ctx context.Context) ([]roster.Tutor, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, full_name, base_salary, is_active
		FROM tutors
		WHERE is_active
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active tutors: %w", err)
	}
	defer rows.Close()

	var tutors []roster.Tutor
	for rows.Next() {
		var t roster.Tutor
		if err := rows.Scan(&t.ID, &t.FullName, &t.BaseSalary, &t.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan tutor: %w", err)
		}
		tutors = append(tutors, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tutors: %w", err)
	}
	return tutors, nil
}

func (r *rosterRepository) EnrolledStudentIDs(ctx context.Context, subjectID string, studentIDs []string) (map[string]bool, error) {
	q := GetQuerier(ctx, r.db)

	enrolled := make(map[string]bool, len(studentIDs))
	if len(studentIDs) == 0 {
		return enrolled, nil
	}

	rows, err := q.Query(ctx, `
		SELECT student_id::text
		FROM enrollments
		WHERE subject_id::text = $1 AND student_id::text = ANY($2::text[])
	`, subjectID, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrolled[id] = true
	}
	return enrolled, rows.Err()
}
