package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/fee"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/period"
)

// LedgerJobs opens the fee and salary ledgers of a new month.
type LedgerJobs struct {
	feeService     fee.FeeService
	payrollService payroll.PayrollService
	now            func() time.Time
}

func NewLedgerJobs(feeService fee.FeeService, payrollService payroll.PayrollService) *LedgerJobs {
	return &LedgerJobs{
		feeService:     feeService,
		payrollService: payrollService,
		now:            time.Now,
	}
}

func (j *LedgerJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("generate_monthly_ledgers", interval, j.GenerateMonthlyLedgers)
}

// GenerateMonthlyLedgers generates the current month's fees and salaries on
// the first day of the month (UTC). Generation skips existing rows, so the
// repeated runs during that day only fill in what is missing.
func (j *LedgerJobs) GenerateMonthlyLedgers(ctx context.Context) error {
	now := j.now().UTC()
	if now.Day() != 1 {
		return nil
	}
	month := period.Of(now).String()

	slog.Info("Cron: Starting monthly ledger generation", "month", month)

	fees, feeErr := j.feeService.GenerateFees(ctx, user.System, fee.GenerateFeesRequest{Month: month})
	if feeErr != nil {
		feeErr = fmt.Errorf("fee generation: %w", feeErr)
	} else {
		slog.Info("Cron: Fee generation finished", "month", month, "created", fees.Created, "skipped", fees.Skipped, "failed", len(fees.Failures))
	}

	salaries, salaryErr := j.payrollService.GenerateSalaries(ctx, user.System, payroll.GenerateSalariesRequest{Month: month})
	if salaryErr != nil {
		salaryErr = fmt.Errorf("salary generation: %w", salaryErr)
	} else {
		slog.Info("Cron: Salary generation finished", "month", month, "created", salaries.Created, "skipped", salaries.Skipped, "failed", len(salaries.Failures))
	}

	return errors.Join(feeErr, salaryErr)
}
