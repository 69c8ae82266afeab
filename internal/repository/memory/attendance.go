package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/schedule"
)

type AttendanceRepository struct {
	s *Store
}

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &AttendanceRepository{s: s}
}

func (r *AttendanceRepository) Mark(ctx context.Context, scheduleID string, records []attendance.Record) (schedule.Status, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sch, ok := r.s.schedules[scheduleID]
	if !ok {
		return "", schedule.ErrScheduleNotFound
	}

	now := r.s.now()
	roll := r.s.attendance[scheduleID]
	if roll == nil {
		roll = make(map[string]attendance.Record)
		r.s.attendance[scheduleID] = roll
	}
	for _, rec := range records {
		if existing, ok := roll[rec.StudentID]; ok {
			rec.ID = existing.ID
		} else {
			rec.ID = newID()
		}
		rec.ScheduleID = scheduleID
		rec.RecordedAt = now
		roll[rec.StudentID] = rec
	}

	if sch.Status == schedule.StatusUpcoming {
		sch.Status = schedule.StatusCompleted
		sch.UpdatedAt = now
		r.s.schedules[scheduleID] = sch
	}
	return sch.Status, nil
}

func (r *AttendanceRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.schedules[scheduleID]; !ok {
		return nil, schedule.ErrScheduleNotFound
	}
	out := make([]attendance.Record, 0, len(r.s.attendance[scheduleID]))
	for _, rec := range r.s.attendance[scheduleID] {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}
