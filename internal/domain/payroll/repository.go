package payroll

import (
	"context"

	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/period"
)

type PayrollRepository interface {
	// CreateSalaryEntry inserts e unless the tutor already has an entry for the
	// month, in which case it returns ErrSalaryEntryExists.
	CreateSalaryEntry(ctx context.Context, e SalaryEntry) (SalaryEntry, error)
	GetSalaryEntryByID(ctx context.Context, id string) (SalaryEntry, error)
	ListSalaryEntries(ctx context.Context, filter SalaryFilter) ([]SalaryEntry, int64, error)
	// UpdateSalaryEntry runs fn against the row-locked entry and persists the
	// result. Nothing is written when fn fails.
	UpdateSalaryEntry(ctx context.Context, id string, fn func(*SalaryEntry) error) (SalaryEntry, error)
	GetPayrollSummary(ctx context.Context, month period.Month) (PayrollSummary, error)
}
