package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/roster"
)

type RosterRepository struct {
	s *Store
}

func NewRosterRepository(s *Store) roster.RosterRepository {
	return &RosterRepository{s: s}
}

// Seeding helpers. The roster is owned by the profile service; these exist so
// the development driver and tests can populate it.

func (s *Store) AddClass(c roster.Class) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[c.ID] = c
}

func (s *Store) AddSubject(sub roster.Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subjects[sub.ID] = sub
}

func (s *Store) AddTutor(t roster.Tutor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tutors[t.ID] = t
}

func (s *Store) AddStudent(st roster.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[st.ID] = st
}

func (s *Store) Enroll(studentID string, subjectIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enrollments[studentID] == nil {
		s.enrollments[studentID] = make(map[string]bool)
	}
	for _, id := range subjectIDs {
		s.enrollments[studentID][id] = true
	}
}

func (r *RosterRepository) GetClass(ctx context.Context, id string) (roster.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.classes[id]
	if !ok {
		return roster.Class{}, roster.ErrClassNotFound
	}
	return c, nil
}

func (r *RosterRepository) GetSubject(ctx context.Context, id string) (roster.Subject, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sub, ok := r.s.subjects[id]
	if !ok {
		return roster.Subject{}, roster.ErrSubjectNotFound
	}
	return sub, nil
}

func (r *RosterRepository) GetTutor(ctx context.Context, id string) (roster.Tutor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tutors[id]
	if !ok {
		return roster.Tutor{}, roster.ErrTutorNotFound
	}
	return t, nil
}

func (r *RosterRepository) ActiveEnrollments(ctx context.Context) ([]roster.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []roster.Enrollment
	for _, st := range r.s.students {
		if !st.IsActive {
			continue
		}
		e := roster.Enrollment{Student: st}
		for subjectID := range r.s.enrollments[st.ID] {
			sub, ok := r.s.subjects[subjectID]
			if !ok {
				continue
			}
			e.Subjects = append(e.Subjects, sub)
		}
		sort.Slice(e.Subjects, func(i, j int) bool { return e.Subjects[i].ID < e.Subjects[j].ID })
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Student.ID < out[j].Student.ID })
	return out, nil
}

func (r *RosterRepository) ActiveTutors(ctx context.Context) ([]roster.Tutor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []roster.Tutor
	for _, t := range r.s.tutors {
		if t.IsActive {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RosterRepository) EnrolledStudentIDs(ctx context.Context, subjectID string, studentIDs []string) (map[string]bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[string]bool, len(studentIDs))
	for _, id := range studentIDs {
		if r.s.enrollments[id][subjectID] {
			out[id] = true
		}
	}
	return out, nil
}
