package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/batch"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/period"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

const generationWorkers = 8

type PayrollServiceImpl struct {
	payrollRepo payroll.PayrollRepository
	rosterRepo  roster.RosterRepository
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewPayrollService(payrollRepo payroll.PayrollRepository, rosterRepo roster.RosterRepository, m *metrics.Metrics) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo: payrollRepo,
		rosterRepo:  rosterRepo,
		metrics:     m,
		now:         time.Now,
	}
}

// GenerateSalaries creates a Pending entry for every active tutor that does
// not have one for the month yet.
func (s *PayrollServiceImpl) GenerateSalaries(ctx context.Context, actor user.Actor, req payroll.GenerateSalariesRequest) (batch.Result, error) {
	if err := actor.Validate(); err != nil {
		return batch.Result{}, err
	}
	if err := req.Validate(); err != nil {
		return batch.Result{}, err
	}
	month, err := period.ParseMonth(req.Month)
	if err != nil {
		return batch.Result{}, validator.ValidationErrors{{Field: "month", Message: err.Error()}}
	}

	tutors, err := s.rosterRepo.ActiveTutors(ctx)
	if err != nil {
		return batch.Result{}, fmt.Errorf("failed to load active tutors: %w", err)
	}

	rec := batch.NewRecorder(month.String())
	createdBy := actor.UserID

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(generationWorkers)
	for _, tutor := range tutors {
		tutor := tutor
		g.Go(func() error {
			if tutor.BaseSalary.IsNegative() {
				rec.Failed(batch.Failure{EntityID: tutor.ID, Reason: "tutor base salary is negative"})
				return nil
			}

			entry := payroll.NewEntry(tutor.ID, tutor.BaseSalary, month)
			entry.CreatedBy = &createdBy
			_, err := s.payrollRepo.CreateSalaryEntry(gctx, entry)
			switch {
			case err == nil:
				rec.Created()
			case errors.Is(err, payroll.ErrSalaryEntryExists):
				rec.Skipped()
			default:
				slog.Warn("Failed to create salary entry", "tutor_id", tutor.ID, "month", month.String(), "error", err)
				rec.Failed(batch.Failure{EntityID: tutor.ID, Reason: err.Error()})
			}
			return nil
		})
	}
	_ = g.Wait()

	result := rec.Result()
	s.metrics.ObserveGeneration(metrics.LedgerSalary, result)
	slog.Info("Generated salary entries",
		"month", result.Month,
		"created", result.Created,
		"skipped", result.Skipped,
		"failed", len(result.Failures),
		"actor", actor.String(),
	)
	return result, nil
}

func (s *PayrollServiceImpl) UpdateSalary(ctx context.Context, actor user.Actor, req payroll.UpdateSalaryRequest) (payroll.SalaryResponse, error) {
	if err := actor.Validate(); err != nil {
		return payroll.SalaryResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.SalaryResponse{}, err
	}

	updated, err := s.payrollRepo.UpdateSalaryEntry(ctx, req.ID, func(e *payroll.SalaryEntry) error {
		return req.Apply(e, s.now().UTC(), actor.UserID)
	})
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	slog.Info("Updated salary entry", "salary_id", updated.ID, "status", updated.Status, "net", updated.NetSalary().String(), "actor", actor.String())
	return payroll.ToResponse(updated), nil
}

func (s *PayrollServiceImpl) MarkSalaryPaid(ctx context.Context, actor user.Actor, id string) (payroll.SalaryResponse, error) {
	if err := actor.Validate(); err != nil {
		return payroll.SalaryResponse{}, err
	}

	paid, err := s.payrollRepo.UpdateSalaryEntry(ctx, id, func(e *payroll.SalaryEntry) error {
		return e.MarkPaid(s.now().UTC(), actor.UserID)
	})
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	s.metrics.PaymentRecorded(metrics.LedgerSalary)
	slog.Info("Salary entry paid", "salary_id", paid.ID, "net", paid.NetSalary().String(), "actor", actor.String())
	return payroll.ToResponse(paid), nil
}

func (s *PayrollServiceImpl) GetSalary(ctx context.Context, id string) (payroll.SalaryResponse, error) {
	e, err := s.payrollRepo.GetSalaryEntryByID(ctx, id)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}
	return payroll.ToResponse(e), nil
}

func (s *PayrollServiceImpl) ListSalaries(ctx context.Context, filter payroll.SalaryFilter) (payroll.ListSalaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListSalaryResponse{}, err
	}

	entries, total, err := s.payrollRepo.ListSalaryEntries(ctx, filter)
	if err != nil {
		return payroll.ListSalaryResponse{}, fmt.Errorf("failed to list salary entries: %w", err)
	}

	resp := payroll.ListSalaryResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Salaries:   make([]payroll.SalaryResponse, 0, len(entries)),
	}
	if filter.Limit > 0 {
		resp.TotalPages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}
	for _, e := range entries {
		resp.Salaries = append(resp.Salaries, payroll.ToResponse(e))
	}
	return resp, nil
}

func (s *PayrollServiceImpl) GetPayrollSummary(ctx context.Context, month string) (payroll.PayrollSummaryResponse, error) {
	m, err := period.ParseMonth(month)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, validator.ValidationErrors{{Field: "month", Message: err.Error()}}
	}

	summary, err := s.payrollRepo.GetPayrollSummary(ctx, m)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}
	return payroll.ToSummaryResponse(summary), nil
}
