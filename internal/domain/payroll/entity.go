package payroll

import (
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

// SalaryStatus enum
type SalaryStatus string

const (
	SalaryStatusPending       SalaryStatus = "Pending"
	SalaryStatusPaid          SalaryStatus = "Paid"
	SalaryStatusPartiallyPaid SalaryStatus = "Partially Paid"
	SalaryStatusAdjusted      SalaryStatus = "Adjusted"
	SalaryStatusOnHold        SalaryStatus = "On Hold"
)

func (s SalaryStatus) Valid() bool {
	switch s {
	case SalaryStatusPending, SalaryStatusPaid, SalaryStatusPartiallyPaid, SalaryStatusAdjusted, SalaryStatusOnHold:
		return true
	default:
		return false
	}
}

// SalaryEntry - one tutor's pay for one month
type SalaryEntry struct {
	ID          string
	TutorID     string
	Month       string // YYYY-MM
	BaseAmount  decimal.Decimal
	Allowances  decimal.Decimal
	Bonus       decimal.Decimal
	Deductions  decimal.Decimal
	Status      SalaryStatus
	PaymentDate *time.Time
	PaidBy      *string
	Remarks     *string
	CreatedBy   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEntry snapshots base salary; adjustments start at zero.
func NewEntry(tutorID string, baseSalary decimal.Decimal, month period.Month) SalaryEntry {
	return SalaryEntry{
		TutorID:    tutorID,
		Month:      month.String(),
		BaseAmount: baseSalary,
		Allowances: decimal.Zero,
		Bonus:      decimal.Zero,
		Deductions: decimal.Zero,
		Status:     SalaryStatusPending,
	}
}

// NetSalary is always derived from the four monetary inputs.
func (e SalaryEntry) NetSalary() decimal.Decimal {
	return e.BaseAmount.Add(e.Allowances).Add(e.Bonus).Sub(e.Deductions)
}

func (e SalaryEntry) IsPaid() bool {
	return e.Status == SalaryStatusPaid
}

func (e *SalaryEntry) MarkPaid(at time.Time, by string) error {
	if e.IsPaid() {
		return ErrSalaryAlreadyPaid
	}
	e.setStatus(SalaryStatusPaid, at, by)
	return nil
}

// setStatus keeps PaymentDate in step with the Paid status.
func (e *SalaryEntry) setStatus(s SalaryStatus, at time.Time, by string) {
	switch {
	case s == SalaryStatusPaid && !e.IsPaid():
		e.PaymentDate = &at
		e.PaidBy = nil
		if by != "" {
			e.PaidBy = &by
		}
	case s != SalaryStatusPaid:
		e.PaymentDate = nil
		e.PaidBy = nil
	}
	e.Status = s
}

// PayrollSummary - totals of one month
type PayrollSummary struct {
	Month           string
	EntryCount      int
	TotalBase       decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalBonus      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNet        decimal.Decimal
	PaidCount       int
	PaidNet         decimal.Decimal
	OutstandingNet  decimal.Decimal
}

// Add folds e into the summary.
func (s *PayrollSummary) Add(e SalaryEntry) {
	net := e.NetSalary()
	s.EntryCount++
	s.TotalBase = s.TotalBase.Add(e.BaseAmount)
	s.TotalAllowances = s.TotalAllowances.Add(e.Allowances)
	s.TotalBonus = s.TotalBonus.Add(e.Bonus)
	s.TotalDeductions = s.TotalDeductions.Add(e.Deductions)
	s.TotalNet = s.TotalNet.Add(net)
	if e.IsPaid() {
		s.PaidCount++
		s.PaidNet = s.PaidNet.Add(net)
	} else {
		s.OutstandingNet = s.OutstandingNet.Add(net)
	}
}
