package roster

import "github.com/shopspring/decimal"

// Class is a cohort students are grouped into (e.g. "Grade 9 - Evening").
type Class struct {
	ID   string
	Name string
}

// Subject belongs to exactly one class and may have an assigned tutor.
type Subject struct {
	ID         string
	ClassID    string
	Name       string
	TutorID    *string
	MonthlyFee decimal.Decimal
}

type Tutor struct {
	ID         string
	FullName   string
	BaseSalary decimal.Decimal
	IsActive   bool
}

type Student struct {
	ID       string
	FullName string
	IsActive bool
}

// Enrollment is an active student together with the subjects they are
// currently enrolled in, each carrying its current monthly fee.
type Enrollment struct {
	Student  Student
	Subjects []Subject
}
