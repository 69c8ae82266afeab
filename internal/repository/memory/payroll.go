package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/period"
)

type PayrollRepository struct {
	s *Store
}

func NewPayrollRepository(s *Store) payroll.PayrollRepository {
	return &PayrollRepository{s: s}
}

func (r *PayrollRepository) CreateSalaryEntry(ctx context.Context, e payroll.SalaryEntry) (payroll.SalaryEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := e.TutorID + "|" + e.Month
	if _, exists := r.s.salaryKeys[key]; exists {
		return payroll.SalaryEntry{}, payroll.ErrSalaryEntryExists
	}
	if e.ID == "" {
		e.ID = newID()
	}
	now := r.s.now()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.salaries[e.ID] = e
	r.s.salaryKeys[key] = e.ID
	return e, nil
}

func (r *PayrollRepository) GetSalaryEntryByID(ctx context.Context, id string) (payroll.SalaryEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.salaries[id]
	if !ok {
		return payroll.SalaryEntry{}, payroll.ErrSalaryEntryNotFound
	}
	return e, nil
}

func (r *PayrollRepository) ListSalaryEntries(ctx context.Context, filter payroll.SalaryFilter) ([]payroll.SalaryEntry, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []payroll.SalaryEntry
	for _, e := range r.s.salaries {
		if !matches(filter.Month, e.Month) || !matches(filter.TutorID, e.TutorID) || !matches(filter.Status, string(e.Status)) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		return out[i].TutorID < out[j].TutorID
	})
	return paginate(out, filter.Page, filter.Limit), int64(len(out)), nil
}

func (r *PayrollRepository) UpdateSalaryEntry(ctx context.Context, id string, fn func(*payroll.SalaryEntry) error) (payroll.SalaryEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.salaries[id]
	if !ok {
		return payroll.SalaryEntry{}, payroll.ErrSalaryEntryNotFound
	}
	if err := fn(&e); err != nil {
		return payroll.SalaryEntry{}, err
	}
	e.UpdatedAt = r.s.now()
	r.s.salaries[id] = e
	return e, nil
}

func (r *PayrollRepository) GetPayrollSummary(ctx context.Context, month period.Month) (payroll.PayrollSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	summary := payroll.PayrollSummary{Month: month.String()}
	for _, e := range r.s.salaries {
		if e.Month == summary.Month {
			summary.Add(e)
		}
	}
	return summary, nil
}
