package fee

import (
	"context"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/batch"
)

type FeeService interface {
	GenerateFees(ctx context.Context, actor user.Actor, req GenerateFeesRequest) (batch.Result, error)
	MarkFeePaid(ctx context.Context, actor user.Actor, id string) (FeeResponse, error)
	GetFee(ctx context.Context, id string) (FeeResponse, error)
	ListFees(ctx context.Context, filter FeeFilter) (ListFeeResponse, error)
	UpdateFee(ctx context.Context, actor user.Actor, req UpdateFeeRequest) (FeeResponse, error)
}
