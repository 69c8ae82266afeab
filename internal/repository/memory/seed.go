package memory

import (
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/roster"
	"github.com/shopspring/decimal"
)

// SeedDemo loads a small roster so the memory driver is usable without the
// profile service: one class, two subjects, two tutors and three students.
func SeedDemo(s *Store) {
	sari, dewi := "tutor-sari", "tutor-dewi"

	s.AddClass(roster.Class{ID: "class-g9", Name: "Grade 9 - Evening"})
	s.AddTutor(roster.Tutor{ID: sari, FullName: "Sari Wulandari", BaseSalary: decimal.NewFromInt(4500000), IsActive: true})
	s.AddTutor(roster.Tutor{ID: dewi, FullName: "Dewi Lestari", BaseSalary: decimal.NewFromInt(4000000), IsActive: true})
	s.AddSubject(roster.Subject{ID: "subj-math", ClassID: "class-g9", Name: "Mathematics", TutorID: &sari, MonthlyFee: decimal.NewFromInt(350000)})
	s.AddSubject(roster.Subject{ID: "subj-phys", ClassID: "class-g9", Name: "Physics", TutorID: &dewi, MonthlyFee: decimal.NewFromInt(300000)})

	for _, st := range []roster.Student{
		{ID: "student-ana", FullName: "Ana Putri", IsActive: true},
		{ID: "student-budi", FullName: "Budi Santoso", IsActive: true},
		{ID: "student-citra", FullName: "Citra Dewi", IsActive: true},
	} {
		s.AddStudent(st)
	}
	s.Enroll("student-ana", "subj-math", "subj-phys")
	s.Enroll("student-budi", "subj-math")
	s.Enroll("student-citra", "subj-phys")
}
