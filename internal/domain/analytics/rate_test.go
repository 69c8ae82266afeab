package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(0, 0))
	assert.Equal(t, 100, Percentage(4, 4))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 50, Percentage(1, 2))
}

func TestWeekStart(t *testing.T) {
	// 2024-03-13 is a Wednesday.
	assert.Equal(t, day("2024-03-11"), WeekStart(day("2024-03-13")))
	assert.Equal(t, day("2024-03-11"), WeekStart(day("2024-03-11")))
	assert.Equal(t, day("2024-03-11"), WeekStart(day("2024-03-17").Add(23*time.Hour)))
}

func TestWeeklyOverview_NoDataDaysAreZeroButExcludedFromAverage(t *testing.T) {
	counts := []DailyCount{
		{Date: day("2024-03-11"), Attended: 2, Total: 2}, // 100
		{Date: day("2024-03-13"), Attended: 1, Total: 2}, // 50
		{Date: day("2024-03-15"), Attended: 0, Total: 3}, // 0
	}

	points := WeeklyOverview(day("2024-03-11"), counts)
	require.Len(t, points, 7)

	got := make([]int, 0, 7)
	withData := 0
	for i, p := range points {
		assert.Equal(t, day("2024-03-11").AddDate(0, 0, i), p.Date)
		got = append(got, p.Percentage)
		if p.HasData {
			withData++
		}
	}
	assert.Equal(t, []int{100, 0, 50, 0, 0, 0, 0}, got)
	assert.Equal(t, 3, withData)
	assert.False(t, points[4].HasData)
	assert.True(t, points[4].Percentage == 0 && points[6].Percentage == 0)

	assert.Equal(t, 50, WeeklyAverage(points))
}

func TestRunningRate(t *testing.T) {
	assert.Equal(t, 0, RunningRate(nil))
	counts := []DailyCount{
		{Date: day("2024-03-11"), Attended: 2, Total: 2},
		{Date: day("2024-03-13"), Attended: 1, Total: 2},
	}
	assert.Equal(t, 75, RunningRate(counts))
}

func TestWeeklyAverage_Empty(t *testing.T) {
	assert.Equal(t, 0, WeeklyAverage(WeeklyOverview(day("2024-03-11"), nil)))
}
