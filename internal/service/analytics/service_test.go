package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/fee"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/period"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/tuition-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc        *AnalyticsServiceImpl
	store      *memory.Store
	schedules  schedule.ScheduleRepository
	attendance attendance.AttendanceRepository
	fees       fee.FeeRepository
	salaries   payroll.PayrollRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	f := fixture{
		store:      store,
		schedules:  memory.NewScheduleRepository(store),
		attendance: memory.NewAttendanceRepository(store),
		fees:       memory.NewFeeRepository(store),
		salaries:   memory.NewPayrollRepository(store),
	}
	f.svc = NewAnalyticsService(memory.NewAnalyticsRepository(store), f.fees, f.salaries).(*AnalyticsServiceImpl)
	f.svc.now = func() time.Time { return time.Date(2024, time.March, 13, 15, 0, 0, 0, time.UTC) }
	return f
}

// roll creates a schedule on date for subject and records one row per status.
func (f fixture) roll(t *testing.T, date, subjectID string, statuses ...attendance.Status) {
	t.Helper()
	ctx := context.Background()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)

	sch, err := f.schedules.Create(ctx, schedule.ClassSchedule{
		ClassID: "class-1", SubjectID: subjectID, TutorID: "tutor-1",
		Date: d, StartTime: "09:00", EndTime: "10:00", Status: schedule.StatusUpcoming,
	})
	require.NoError(t, err)

	records := make([]attendance.Record, 0, len(statuses))
	for i, st := range statuses {
		records = append(records, attendance.Record{ScheduleID: sch.ID, StudentID: string(rune('a' + i)), Status: st})
	}
	if len(records) > 0 {
		_, err = f.attendance.Mark(ctx, sch.ID, records)
		require.NoError(t, err)
	}
}

func TestGetAnalytics_WeeklyOverview(t *testing.T) {
	f := newFixture(t)
	// Week of Monday 2024-03-11: Mon 100%, Tue no data, Wed 50%.
	f.roll(t, "2024-03-11", "math", attendance.StatusPresent, attendance.StatusLate)
	f.roll(t, "2024-03-13", "math", attendance.StatusPresent, attendance.StatusAbsent)
	// A scheduled class without any attendance rows does not count.
	f.roll(t, "2024-03-14", "math")

	resp, err := f.svc.GetAnalytics(context.Background(), analytics.AnalyticsRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-13", resp.Date)
	assert.Equal(t, "2024-03", resp.Month)
	require.Len(t, resp.WeeklyOverview, 7)

	var pcts []int
	var days []string
	for _, p := range resp.WeeklyOverview {
		pcts = append(pcts, p.Percentage)
		days = append(days, p.Day)
	}
	assert.Equal(t, []int{100, 0, 50, 0, 0, 0, 0}, pcts)
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, days)
	assert.False(t, resp.WeeklyOverview[1].HasData)
	assert.False(t, resp.WeeklyOverview[3].HasData)

	assert.Equal(t, 50, resp.TodayPercentage)
	assert.Equal(t, 75, resp.WeeklyAverage)
	assert.Equal(t, 75, resp.MonthlyPercentage)
}

func TestGetAnalytics_ExplicitDateAndScope(t *testing.T) {
	f := newFixture(t)
	f.roll(t, "2024-03-11", "math", attendance.StatusPresent, attendance.StatusPresent)
	f.roll(t, "2024-03-11", "art", attendance.StatusAbsent, attendance.StatusAbsent)

	all, err := f.svc.GetAnalytics(context.Background(), analytics.AnalyticsRequest{Date: "2024-03-11"})
	require.NoError(t, err)
	assert.Equal(t, 50, all.TodayPercentage)

	art := "art"
	scoped, err := f.svc.GetAnalytics(context.Background(), analytics.AnalyticsRequest{Date: "2024-03-11", SubjectID: &art})
	require.NoError(t, err)
	assert.Equal(t, 0, scoped.TodayPercentage)
	assert.True(t, scoped.WeeklyOverview[0].HasData)
	assert.Equal(t, int64(2), scoped.WeeklyOverview[0].Total)
}

func TestGetAnalytics_EmptyStoreIsAllZero(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GetAnalytics(context.Background(), analytics.AnalyticsRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp.TodayPercentage)
	assert.Zero(t, resp.WeeklyAverage)
	assert.Zero(t, resp.MonthlyPercentage)
	assert.Len(t, resp.WeeklyOverview, 7)
	assert.True(t, resp.Collected.IsZero())
	assert.True(t, resp.Pending.IsZero())
	assert.True(t, resp.PayrollPaid.IsZero())
	assert.True(t, resp.PayrollOutstanding.IsZero())
}

func TestGetAnalytics_LedgerTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	march := period.Month{Year: 2024, Month: time.March}

	paid, err := f.fees.Create(ctx, fee.NewEntry("st-1", "math", decimal.NewFromInt(1000), march))
	require.NoError(t, err)
	_, err = f.fees.Create(ctx, fee.NewEntry("st-1", "physics", decimal.NewFromInt(1500), march))
	require.NoError(t, err)
	_, err = f.fees.MarkPaid(ctx, paid.ID, time.Now(), "admin-1")
	require.NoError(t, err)
	_, err = f.fees.Create(ctx, fee.NewEntry("st-1", "math", decimal.NewFromInt(1000), march.Next()))
	require.NoError(t, err)

	_, err = f.salaries.CreateSalaryEntry(ctx, payroll.NewEntry("tutor-1", decimal.NewFromInt(50000), march))
	require.NoError(t, err)

	resp, err := f.svc.GetAnalytics(ctx, analytics.AnalyticsRequest{})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(resp.Collected))
	assert.True(t, decimal.NewFromInt(1500).Equal(resp.Pending))
	assert.True(t, resp.PayrollPaid.IsZero())
	assert.True(t, decimal.NewFromInt(50000).Equal(resp.PayrollOutstanding))
}

func TestGetAnalytics_InvalidDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetAnalytics(context.Background(), analytics.AnalyticsRequest{Date: "13/03/2024"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "date")
}

type failingCounts struct{}

func (failingCounts) DailyCounts(context.Context, analytics.Scope, time.Time, time.Time) ([]analytics.DailyCount, error) {
	return nil, errors.New("db down")
}

func TestGetAnalytics_ReadFailure(t *testing.T) {
	f := newFixture(t)
	f.svc.analyticsRepo = failingCounts{}

	_, err := f.svc.GetAnalytics(context.Background(), analytics.AnalyticsRequest{})
	assert.ErrorContains(t, err, "db down")
}
