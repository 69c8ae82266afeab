package payroll

import (
	"context"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/batch"
)

type PayrollService interface {
	GenerateSalaries(ctx context.Context, actor user.Actor, req GenerateSalariesRequest) (batch.Result, error)
	UpdateSalary(ctx context.Context, actor user.Actor, req UpdateSalaryRequest) (SalaryResponse, error)
	MarkSalaryPaid(ctx context.Context, actor user.Actor, id string) (SalaryResponse, error)
	GetSalary(ctx context.Context, id string) (SalaryResponse, error)
	ListSalaries(ctx context.Context, filter SalaryFilter) (ListSalaryResponse, error)
	GetPayrollSummary(ctx context.Context, month string) (PayrollSummaryResponse, error)
}
