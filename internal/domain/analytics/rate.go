package analytics

import (
	"math"
	"time"
)

// Percentage is attended/total as a whole percent, rounded half away from zero.
// It is 0 when total is 0.
func Percentage(attended, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(attended) * 100 / float64(total)))
}

// RunningRate pools every day in counts into one percentage. Days without
// rows never appear in counts, so they cannot dilute the rate.
func RunningRate(counts []DailyCount) int {
	var attended, total int64
	for _, c := range counts {
		attended += c.Attended
		total += c.Total
	}
	return Percentage(attended, total)
}

const dayKey = "2006-01-02"

// WeekStart returns the Monday of the week containing t, at UTC midnight.
func WeekStart(t time.Time) time.Time {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// Day truncates t to its calendar day at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeeklyOverview lays counts out as seven points, Monday first. A day without
// data is reported as 0 with HasData false so the chart keeps seven bars.
func WeeklyOverview(weekStart time.Time, counts []DailyCount) []DayPoint {
	byDay := make(map[string]DailyCount, len(counts))
	for _, c := range counts {
		byDay[c.Date.Format(dayKey)] = c
	}

	start := Day(weekStart)
	points := make([]DayPoint, 7)
	for i := range points {
		day := start.AddDate(0, 0, i)
		p := DayPoint{Date: day}
		if c, ok := byDay[day.Format(dayKey)]; ok && c.Total > 0 {
			p.HasData = true
			p.Attended = c.Attended
			p.Total = c.Total
			p.Percentage = Percentage(c.Attended, c.Total)
		}
		points[i] = p
	}
	return points
}

// WeeklyAverage is the mean of the daily percentages over days with data only.
func WeeklyAverage(points []DayPoint) int {
	var sum, n int
	for _, p := range points {
		if !p.HasData {
			continue
		}
		sum += p.Percentage
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}
