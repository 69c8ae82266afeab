package analytics

import (
	"context"
	"time"
)

// AnalyticsRepository reads attendance tallies. Ledger totals come from the
// fee and payroll repositories.
type AnalyticsRepository interface {
	// DailyCounts tallies attendance rows of schedules dated within [from, to],
	// one entry per day that has at least one row, ordered by date.
	DailyCounts(ctx context.Context, scope Scope, from, to time.Time) ([]DailyCount, error)
}
