package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/schedule"
)

type ScheduleRepository struct {
	s *Store
}

func NewScheduleRepository(s *Store) schedule.ScheduleRepository {
	return &ScheduleRepository{s: s}
}

func (r *ScheduleRepository) Create(ctx context.Context, sch schedule.ClassSchedule) (schedule.ClassSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if sch.ID == "" {
		sch.ID = newID()
	}
	now := r.s.now()
	sch.CreatedAt, sch.UpdatedAt = now, now
	r.s.schedules[sch.ID] = sch
	return sch, nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (schedule.ClassSchedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sch, ok := r.s.schedules[id]
	if !ok {
		return schedule.ClassSchedule{}, schedule.ErrScheduleNotFound
	}
	return sch, nil
}

func (r *ScheduleRepository) List(ctx context.Context, filter schedule.ScheduleFilter) ([]schedule.ClassSchedule, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var from, to time.Time
	if filter.From != nil {
		from, _ = time.Parse(schedule.DateLayout, *filter.From)
	}
	if filter.To != nil {
		to, _ = time.Parse(schedule.DateLayout, *filter.To)
	}

	var out []schedule.ClassSchedule
	for _, sch := range r.s.schedules {
		if !from.IsZero() && sch.Date.Before(from) {
			continue
		}
		if !to.IsZero() && sch.Date.After(to) {
			continue
		}
		if !matches(filter.ClassID, sch.ClassID) || !matches(filter.SubjectID, sch.SubjectID) ||
			!matches(filter.TutorID, sch.TutorID) || !matches(filter.Status, string(sch.Status)) {
			continue
		}
		out = append(out, sch)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, filter.Page, filter.Limit), int64(len(out)), nil
}

func (r *ScheduleRepository) Update(ctx context.Context, id string, fn func(*schedule.ClassSchedule) error) (schedule.ClassSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sch, ok := r.s.schedules[id]
	if !ok {
		return schedule.ClassSchedule{}, schedule.ErrScheduleNotFound
	}
	if err := fn(&sch); err != nil {
		return schedule.ClassSchedule{}, err
	}
	sch.UpdatedAt = r.s.now()
	r.s.schedules[id] = sch
	return sch, nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.schedules[id]; !ok {
		return schedule.ErrScheduleNotFound
	}
	delete(r.s.schedules, id)
	delete(r.s.attendance, id)
	return nil
}
