package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/fee"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/batch"
	"github.com/cmlabs-hris/tuition-backend-go/internal/repository/memory"
	feeService "github.com/cmlabs-hris/tuition-backend-go/internal/service/fee"
	payrollService "github.com/cmlabs-hris/tuition-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerJobs(t *testing.T, now time.Time) (*LedgerJobs, fee.FeeService, payroll.PayrollService) {
	t.Helper()
	store := memory.NewStore()
	store.AddSubject(roster.Subject{ID: "math", ClassID: "class-1", MonthlyFee: decimal.NewFromInt(1000)})
	store.AddStudent(roster.Student{ID: "st-1", IsActive: true})
	store.Enroll("st-1", "math")
	store.AddTutor(roster.Tutor{ID: "tutor-1", BaseSalary: decimal.NewFromInt(50000), IsActive: true})

	rosterRepo := memory.NewRosterRepository(store)
	fees := feeService.NewFeeService(memory.NewFeeRepository(store), rosterRepo, nil)
	salaries := payrollService.NewPayrollService(memory.NewPayrollRepository(store), rosterRepo, nil)

	jobs := NewLedgerJobs(fees, salaries)
	jobs.now = func() time.Time { return now }
	return jobs, fees, salaries
}

func TestGenerateMonthlyLedgers_FirstOfMonth(t *testing.T) {
	ctx := context.Background()
	jobs, fees, salaries := newLedgerJobs(t, time.Date(2024, time.April, 1, 0, 30, 0, 0, time.UTC))

	require.NoError(t, jobs.GenerateMonthlyLedgers(ctx))
	require.NoError(t, jobs.GenerateMonthlyLedgers(ctx), "a second run on the same day is harmless")

	month := "2024-04"
	feeList, err := fees.ListFees(ctx, fee.FeeFilter{Month: &month})
	require.NoError(t, err)
	assert.EqualValues(t, 1, feeList.TotalCount)
	require.NotEmpty(t, feeList.Fees)
	assert.Equal(t, "2024-04-30", feeList.Fees[0].DueDate)

	salaryList, err := salaries.ListSalaries(ctx, payroll.SalaryFilter{Month: &month})
	require.NoError(t, err)
	assert.EqualValues(t, 1, salaryList.TotalCount)
}

func TestGenerateMonthlyLedgers_OtherDaysDoNothing(t *testing.T) {
	ctx := context.Background()
	jobs, fees, _ := newLedgerJobs(t, time.Date(2024, time.April, 2, 0, 30, 0, 0, time.UTC))

	require.NoError(t, jobs.GenerateMonthlyLedgers(ctx))

	feeList, err := fees.ListFees(ctx, fee.FeeFilter{})
	require.NoError(t, err)
	assert.Zero(t, feeList.TotalCount)
}

type failingFees struct{ fee.FeeService }

func (failingFees) GenerateFees(context.Context, user.Actor, fee.GenerateFeesRequest) (batch.Result, error) {
	return batch.Result{}, errors.New("roster unavailable")
}

func TestGenerateMonthlyLedgers_FeeFailureStillRunsPayroll(t *testing.T) {
	ctx := context.Background()
	jobs, _, salaries := newLedgerJobs(t, time.Date(2024, time.April, 1, 0, 30, 0, 0, time.UTC))
	jobs.feeService = failingFees{}

	err := jobs.GenerateMonthlyLedgers(ctx)
	assert.ErrorContains(t, err, "roster unavailable")

	month := "2024-04"
	salaryList, err := salaries.ListSalaries(ctx, payroll.SalaryFilter{Month: &month})
	require.NoError(t, err)
	assert.EqualValues(t, 1, salaryList.TotalCount)
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(context.Background())
	var runs int
	s.AddJob("count", time.Hour, func(context.Context) error { runs++; return nil })
	s.AddJob("fail", time.Hour, func(context.Context) error { return errors.New("boom") })

	s.RunOnce(context.Background())
	assert.Equal(t, 1, runs)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(context.Background())
	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
