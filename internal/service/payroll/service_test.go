package payroll

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/apperr"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/tuition-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = user.Actor{UserID: "admin-1", Role: user.RoleAdmin}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func str(s string) *string { return &s }

func newService(t *testing.T) *PayrollServiceImpl {
	t.Helper()
	store := memory.NewStore()
	store.AddTutor(roster.Tutor{ID: "tutor-1", FullName: "Sari", BaseSalary: decimal.NewFromInt(50000), IsActive: true})
	store.AddTutor(roster.Tutor{ID: "tutor-2", FullName: "Dewi", BaseSalary: decimal.NewFromInt(30000), IsActive: true})
	store.AddTutor(roster.Tutor{ID: "tutor-3", FullName: "Left", BaseSalary: decimal.NewFromInt(99999), IsActive: false})

	svc := NewPayrollService(memory.NewPayrollRepository(store), memory.NewRosterRepository(store), nil).(*PayrollServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, time.March, 28, 9, 0, 0, 0, time.UTC) }
	return svc
}

func generated(t *testing.T, svc *PayrollServiceImpl, tutorID string) payroll.SalaryResponse {
	t.Helper()
	ctx := context.Background()
	_, err := svc.GenerateSalaries(ctx, admin, payroll.GenerateSalariesRequest{Month: "2024-03"})
	require.NoError(t, err)

	resp, err := svc.ListSalaries(ctx, payroll.SalaryFilter{TutorID: &tutorID})
	require.NoError(t, err)
	require.Len(t, resp.Salaries, 1)
	return resp.Salaries[0]
}

func TestGenerateSalaries_SnapshotsBaseSalary(t *testing.T) {
	svc := newService(t)

	result, err := svc.GenerateSalaries(context.Background(), admin, payroll.GenerateSalariesRequest{Month: "2024-03"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Empty(t, result.Failures)

	entry := generated(t, svc, "tutor-1")
	assert.Equal(t, "Pending", entry.Status)
	assert.True(t, decimal.NewFromInt(50000).Equal(entry.NetSalary))
	assert.True(t, entry.Allowances.IsZero())
	assert.True(t, entry.Bonus.IsZero())
	assert.True(t, entry.Deductions.IsZero())
	assert.Nil(t, entry.PaymentDate)
}

func TestGenerateSalaries_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.GenerateSalaries(ctx, admin, payroll.GenerateSalariesRequest{Month: "2024-03"})
	require.NoError(t, err)
	again, err := svc.GenerateSalaries(ctx, admin, payroll.GenerateSalariesRequest{Month: "2024-03"})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Created)
	assert.Equal(t, 2, again.Skipped)

	_, err = svc.GenerateSalaries(ctx, admin, payroll.GenerateSalariesRequest{Month: "2024-3"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestUpdateSalary_RecomputesNet(t *testing.T) {
	svc := newService(t)
	entry := generated(t, svc, "tutor-1")

	updated, err := svc.UpdateSalary(context.Background(), admin, payroll.UpdateSalaryRequest{
		ID:         entry.ID,
		Allowances: dec(5000),
		Deductions: dec(2000),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(53000).Equal(updated.NetSalary), updated.NetSalary.String())
	assert.Equal(t, "tutor-1", updated.TutorID)
	assert.Equal(t, "2024-03", updated.Month)
}

func TestUpdateSalary_Validation(t *testing.T) {
	svc := newService(t)
	entry := generated(t, svc, "tutor-1")

	tests := []struct {
		name  string
		req   payroll.UpdateSalaryRequest
		field string
	}{
		{"negative bonus", payroll.UpdateSalaryRequest{ID: entry.ID, Bonus: dec(-1)}, "bonus"},
		{"negative deductions", payroll.UpdateSalaryRequest{ID: entry.ID, Deductions: dec(-100)}, "deductions"},
		{"negative base amount", payroll.UpdateSalaryRequest{ID: entry.ID, BaseAmount: dec(-5)}, "base_amount"},
		{"unknown status", payroll.UpdateSalaryRequest{ID: entry.ID, Status: str("Cancelled")}, "status"},
		{"long remarks", payroll.UpdateSalaryRequest{ID: entry.ID, Remarks: str(strings.Repeat("x", 501))}, "remarks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateSalary(context.Background(), admin, tt.req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}

	got, err := svc.GetSalary(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50000).Equal(got.NetSalary), "rejected updates leave the entry untouched")
}

func TestUpdateSalary_StatusKeepsPaymentDateInStep(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	entry := generated(t, svc, "tutor-1")

	paid, err := svc.UpdateSalary(ctx, admin, payroll.UpdateSalaryRequest{ID: entry.ID, Status: str("Paid")})
	require.NoError(t, err)
	require.NotNil(t, paid.PaymentDate)

	held, err := svc.UpdateSalary(ctx, admin, payroll.UpdateSalaryRequest{ID: entry.ID, Status: str("On Hold")})
	require.NoError(t, err)
	assert.Nil(t, held.PaymentDate)
	assert.Nil(t, held.PaidBy)
}

func TestUpdateSalary_CorrectsPaidEntryInOneRequest(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	entry := generated(t, svc, "tutor-1")

	_, err := svc.MarkSalaryPaid(ctx, admin, entry.ID)
	require.NoError(t, err)

	adjusted, err := svc.UpdateSalary(ctx, admin, payroll.UpdateSalaryRequest{
		ID:     entry.ID,
		Status: str("Adjusted"),
		Bonus:  dec(100),
	})
	require.NoError(t, err)
	assert.Equal(t, "Adjusted", adjusted.Status)
	assert.True(t, decimal.NewFromInt(50100).Equal(adjusted.NetSalary), adjusted.NetSalary.String())
	assert.Nil(t, adjusted.PaymentDate)

	partial, err := svc.UpdateSalary(ctx, admin, payroll.UpdateSalaryRequest{ID: entry.ID, Status: str("Partially Paid")})
	require.NoError(t, err)
	assert.Equal(t, "Partially Paid", partial.Status)

	_, err = svc.UpdateSalary(ctx, admin, payroll.UpdateSalaryRequest{ID: entry.ID, Status: str("Paid"), Bonus: dec(200)})
	assert.ErrorIs(t, err, payroll.ErrPaidSalaryImmutable)

	got, err := svc.GetSalary(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Partially Paid", got.Status, "a rejected update leaves the entry untouched")
	assert.True(t, decimal.NewFromInt(50100).Equal(got.NetSalary))
}

func TestMarkSalaryPaid(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	entry := generated(t, svc, "tutor-1")

	paid, err := svc.MarkSalaryPaid(ctx, admin, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paid", paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, "2024-03-28T09:00:00Z", *paid.PaymentDate)

	_, err = svc.MarkSalaryPaid(ctx, admin, entry.ID)
	assert.ErrorIs(t, err, payroll.ErrSalaryAlreadyPaid)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)

	_, err = svc.UpdateSalary(ctx, admin, payroll.UpdateSalaryRequest{ID: entry.ID, Bonus: dec(100)})
	assert.ErrorIs(t, err, payroll.ErrPaidSalaryImmutable)

	remarked, err := svc.UpdateSalary(ctx, admin, payroll.UpdateSalaryRequest{ID: entry.ID, Remarks: str("transferred")})
	require.NoError(t, err)
	assert.Equal(t, "Paid", remarked.Status)

	_, err = svc.MarkSalaryPaid(ctx, admin, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetPayrollSummary(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	first := generated(t, svc, "tutor-1")

	_, err := svc.UpdateSalary(ctx, admin, payroll.UpdateSalaryRequest{ID: first.ID, Bonus: dec(2000)})
	require.NoError(t, err)
	_, err = svc.MarkSalaryPaid(ctx, admin, first.ID)
	require.NoError(t, err)

	summary, err := svc.GetPayrollSummary(ctx, "2024-03")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.EntryCount)
	assert.Equal(t, 1, summary.PaidCount)
	assert.True(t, decimal.NewFromInt(82000).Equal(summary.TotalNet), summary.TotalNet.String())
	assert.True(t, decimal.NewFromInt(52000).Equal(summary.PaidNet))
	assert.True(t, decimal.NewFromInt(30000).Equal(summary.OutstandingNet))

	empty, err := svc.GetPayrollSummary(ctx, "2023-01")
	require.NoError(t, err)
	assert.Zero(t, empty.EntryCount)
	assert.True(t, empty.TotalNet.IsZero())

	_, err = svc.GetPayrollSummary(ctx, "bad")
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
