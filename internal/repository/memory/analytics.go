package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/analytics"
)

type AnalyticsRepository struct {
	s *Store
}

func NewAnalyticsRepository(s *Store) analytics.AnalyticsRepository {
	return &AnalyticsRepository{s: s}
}

func (r *AnalyticsRepository) DailyCounts(ctx context.Context, scope analytics.Scope, from, to time.Time) ([]analytics.DailyCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	from, to = analytics.Day(from), analytics.Day(to)
	byDay := make(map[string]*analytics.DailyCount)
	for id, sch := range r.s.schedules {
		if sch.Date.Before(from) || sch.Date.After(to) {
			continue
		}
		if !matches(scope.ClassID, sch.ClassID) || !matches(scope.SubjectID, sch.SubjectID) || !matches(scope.TutorID, sch.TutorID) {
			continue
		}
		roll := r.s.attendance[id]
		if len(roll) == 0 {
			continue
		}
		key := sch.Date.Format("2006-01-02")
		c, ok := byDay[key]
		if !ok {
			c = &analytics.DailyCount{Date: analytics.Day(sch.Date)}
			byDay[key] = c
		}
		for _, rec := range roll {
			c.Total++
			if rec.Status.Attended() {
				c.Attended++
			}
		}
	}

	out := make([]analytics.DailyCount, 0, len(byDay))
	for _, c := range byDay {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
