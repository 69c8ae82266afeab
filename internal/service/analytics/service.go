package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/fee"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/period"
	"golang.org/x/sync/errgroup"
)

type AnalyticsServiceImpl struct {
	analyticsRepo analytics.AnalyticsRepository
	feeRepo       fee.FeeRepository
	payrollRepo   payroll.PayrollRepository
	now           func() time.Time
}

func NewAnalyticsService(
	analyticsRepo analytics.AnalyticsRepository,
	feeRepo fee.FeeRepository,
	payrollRepo payroll.PayrollRepository,
) analytics.AnalyticsService {
	return &AnalyticsServiceImpl{
		analyticsRepo: analyticsRepo,
		feeRepo:       feeRepo,
		payrollRepo:   payrollRepo,
		now:           time.Now,
	}
}

// GetAnalytics builds the dashboard for the day in req (today when empty):
// that day's attendance rate, the Monday-Sunday week around it, the month's
// pooled rate, and the month's fee and payroll totals.
func (s *AnalyticsServiceImpl) GetAnalytics(ctx context.Context, req analytics.AnalyticsRequest) (analytics.AnalyticsResponse, error) {
	if err := req.Validate(); err != nil {
		return analytics.AnalyticsResponse{}, err
	}

	day := analytics.Day(s.now())
	if req.Date != "" {
		day, _ = time.Parse("2006-01-02", req.Date)
	}
	weekStart := analytics.WeekStart(day)
	month := period.Of(day)
	scope := req.Scope()

	var (
		weekCounts  []analytics.DailyCount
		monthCounts []analytics.DailyCount
		totals      fee.Totals
		summary     payroll.PayrollSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		weekCounts, err = s.analyticsRepo.DailyCounts(gctx, scope, weekStart, weekStart.AddDate(0, 0, 6))
		if err != nil {
			return fmt.Errorf("failed to get weekly attendance: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		monthCounts, err = s.analyticsRepo.DailyCounts(gctx, scope, month.FirstDay(), month.LastDay())
		if err != nil {
			return fmt.Errorf("failed to get monthly attendance: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		totals, err = s.feeRepo.Totals(gctx, month)
		if err != nil {
			return fmt.Errorf("failed to get fee totals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		summary, err = s.payrollRepo.GetPayrollSummary(gctx, month)
		if err != nil {
			return fmt.Errorf("failed to get payroll summary: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return analytics.AnalyticsResponse{}, err
	}

	week := analytics.WeeklyOverview(weekStart, weekCounts)
	var today int
	for _, p := range week {
		if p.Date.Equal(day) {
			today = p.Percentage
		}
	}

	return analytics.AnalyticsResponse{
		Date:               day.Format("2006-01-02"),
		Month:              month.String(),
		TodayPercentage:    today,
		WeeklyOverview:     analytics.ToDayPointResponses(week),
		WeeklyAverage:      analytics.WeeklyAverage(week),
		MonthlyPercentage:  analytics.RunningRate(monthCounts),
		Collected:          totals.Collected,
		Pending:            totals.Pending,
		PayrollPaid:        summary.PaidNet,
		PayrollOutstanding: summary.OutstandingNet,
	}, nil
}
