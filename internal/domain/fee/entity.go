package fee

import (
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusOverdue Status = "overdue" // derived on read, never stored
	StatusPaid    Status = "paid"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusOverdue, StatusPaid:
		return true
	default:
		return false
	}
}

// FeeEntry is one student's charge for one subject in one billing month.
// Amount is a snapshot of the subject's monthly fee and never changes.
type FeeEntry struct {
	ID           string
	StudentID    string
	SubjectID    string
	BillingMonth string // YYYY-MM
	Amount       decimal.Decimal
	DueDate      time.Time
	Status       Status // pending or paid
	PaidDate     *time.Time
	PaidBy       *string
	Remarks      *string
	CreatedBy    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewEntry builds a pending entry due on the last day of month.
func NewEntry(studentID, subjectID string, amount decimal.Decimal, month period.Month) FeeEntry {
	return FeeEntry{
		StudentID:    studentID,
		SubjectID:    subjectID,
		BillingMonth: month.String(),
		Amount:       amount,
		DueDate:      month.LastDay(),
		Status:       StatusPending,
	}
}

// EffectiveStatus reports overdue for an unpaid entry whose due date has passed at now.
func (e FeeEntry) EffectiveStatus(now time.Time) Status {
	if e.Status == StatusPending && IsPastDue(e.DueDate, now) {
		return StatusOverdue
	}
	return e.Status
}

// IsPastDue reports whether now is on a later calendar day than due.
func IsPastDue(due, now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return today.After(due)
}

// MarkPaid settles the entry. Status and PaidDate always change together.
func (e *FeeEntry) MarkPaid(at time.Time, by string) error {
	if e.Status == StatusPaid {
		return ErrFeeAlreadyPaid
	}
	e.Status = StatusPaid
	e.PaidDate = &at
	if by != "" {
		e.PaidBy = &by
	}
	return nil
}

// Totals are the fee sums of one billing month.
type Totals struct {
	Collected decimal.Decimal
	Pending   decimal.Decimal
}
