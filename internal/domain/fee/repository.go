package fee

import (
	"context"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/period"
)

type FeeRepository interface {
	// Create inserts e unless an entry for the same student, subject and month
	// exists, in which case it returns ErrFeeEntryExists and writes nothing.
	Create(ctx context.Context, e FeeEntry) (FeeEntry, error)
	GetByID(ctx context.Context, id string) (FeeEntry, error)
	List(ctx context.Context, filter FeeFilter) ([]FeeEntry, int64, error)
	// MarkPaid moves a pending entry to paid in a single compare-and-set.
	// It returns ErrFeeAlreadyPaid if the entry was already paid.
	MarkPaid(ctx context.Context, id string, paidAt time.Time, paidBy string) (FeeEntry, error)
	UpdateRemarks(ctx context.Context, id string, remarks *string) (FeeEntry, error)
	// Totals sums collected and pending amounts for entries due within month.
	Totals(ctx context.Context, month period.Month) (Totals, error)
}
