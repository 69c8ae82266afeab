package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/fee"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/period"
)

type FeeRepository struct {
	s *Store
}

func NewFeeRepository(s *Store) fee.FeeRepository {
	return &FeeRepository{s: s}
}

func feeKey(e fee.FeeEntry) string {
	return e.StudentID + "|" + e.SubjectID + "|" + e.BillingMonth
}

func (r *FeeRepository) Create(ctx context.Context, e fee.FeeEntry) (fee.FeeEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := feeKey(e)
	if _, exists := r.s.feeKeys[key]; exists {
		return fee.FeeEntry{}, fee.ErrFeeEntryExists
	}
	if e.ID == "" {
		e.ID = newID()
	}
	now := r.s.now()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.fees[e.ID] = e
	r.s.feeKeys[key] = e.ID
	return e, nil
}

func (r *FeeRepository) GetByID(ctx context.Context, id string) (fee.FeeEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.fees[id]
	if !ok {
		return fee.FeeEntry{}, fee.ErrFeeEntryNotFound
	}
	return e, nil
}

func (r *FeeRepository) List(ctx context.Context, filter fee.FeeFilter) ([]fee.FeeEntry, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	asOf := filter.AsOf
	if asOf.IsZero() {
		asOf = r.s.now()
	}

	var out []fee.FeeEntry
	for _, e := range r.s.fees {
		if !matches(filter.Month, e.BillingMonth) || !matches(filter.StudentID, e.StudentID) ||
			!matches(filter.SubjectID, e.SubjectID) || !matches(filter.Status, string(e.EffectiveStatus(asOf))) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.BillingMonth != b.BillingMonth {
			return a.BillingMonth > b.BillingMonth
		}
		if a.StudentID != b.StudentID {
			return a.StudentID < b.StudentID
		}
		return a.SubjectID < b.SubjectID
	})
	return paginate(out, filter.Page, filter.Limit), int64(len(out)), nil
}

func (r *FeeRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time, paidBy string) (fee.FeeEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.fees[id]
	if !ok {
		return fee.FeeEntry{}, fee.ErrFeeEntryNotFound
	}
	if err := e.MarkPaid(paidAt, paidBy); err != nil {
		return fee.FeeEntry{}, err
	}
	e.UpdatedAt = r.s.now()
	r.s.fees[id] = e
	return e, nil
}

func (r *FeeRepository) UpdateRemarks(ctx context.Context, id string, remarks *string) (fee.FeeEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.fees[id]
	if !ok {
		return fee.FeeEntry{}, fee.ErrFeeEntryNotFound
	}
	e.Remarks = remarks
	e.UpdatedAt = r.s.now()
	r.s.fees[id] = e
	return e, nil
}

func (r *FeeRepository) Totals(ctx context.Context, month period.Month) (fee.Totals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var t fee.Totals
	for _, e := range r.s.fees {
		if !month.Contains(e.DueDate) {
			continue
		}
		if e.Status == fee.StatusPaid {
			t.Collected = t.Collected.Add(e.Amount)
		} else {
			t.Pending = t.Pending.Add(e.Amount)
		}
	}
	return t, nil
}
