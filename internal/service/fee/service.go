package fee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/fee"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/batch"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/period"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// generationWorkers bounds the concurrent inserts of one generation run.
const generationWorkers = 8

type FeeServiceImpl struct {
	feeRepo    fee.FeeRepository
	rosterRepo roster.RosterRepository
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewFeeService(feeRepo fee.FeeRepository, rosterRepo roster.RosterRepository, m *metrics.Metrics) fee.FeeService {
	return &FeeServiceImpl{
		feeRepo:    feeRepo,
		rosterRepo: rosterRepo,
		metrics:    m,
		now:        time.Now,
	}
}

// GenerateFees creates one pending entry per active student and enrolled
// subject for the month. Rows that already exist are skipped, so running it
// again for the same month is harmless. A failing row is reported in the
// result and does not stop the others.
func (s *FeeServiceImpl) GenerateFees(ctx context.Context, actor user.Actor, req fee.GenerateFeesRequest) (batch.Result, error) {
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

	enrollments, err := s.rosterRepo.ActiveEnrollments(ctx)
	if err != nil {
		return batch.Result{}, fmt.Errorf("failed to load active enrollments: %w", err)
	}

	rec := batch.NewRecorder(month.String())
	createdBy := actor.UserID

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(generationWorkers)
	for _, en := range enrollments {
		for _, subj := range en.Subjects {
			subj := subj
			studentID := en.Student.ID
			g.Go(func() error {
				if subj.MonthlyFee.IsNegative() {
					rec.Failed(batch.Failure{EntityID: studentID, SubjectID: subj.ID, Reason: "subject monthly fee is negative"})
					return nil
				}

				entry := fee.NewEntry(studentID, subj.ID, subj.MonthlyFee, month)
				entry.CreatedBy = &createdBy
				_, err := s.feeRepo.Create(gctx, entry)
				switch {
				case err == nil:
					rec.Created()
				case errors.Is(err, fee.ErrFeeEntryExists):
					rec.Skipped()
				default:
					slog.Warn("Failed to create fee entry", "student_id", studentID, "subject_id", subj.ID, "month", month.String(), "error", err)
					rec.Failed(batch.Failure{EntityID: studentID, SubjectID: subj.ID, Reason: err.Error()})
				}
				return nil
			})
		}
	}
	_ = g.Wait()

	result := rec.Result()
	s.metrics.ObserveGeneration(metrics.LedgerFee, result)
	slog.Info("Generated fee entries",
		"month", result.Month,
		"created", result.Created,
		"skipped", result.Skipped,
		"failed", len(result.Failures),
		"actor", actor.String(),
	)
	return result, nil
}

func (s *FeeServiceImpl) MarkFeePaid(ctx context.Context, actor user.Actor, id string) (fee.FeeResponse, error) {
	if err := actor.Validate(); err != nil {
		return fee.FeeResponse{}, err
	}

	now := s.now()
	paid, err := s.feeRepo.MarkPaid(ctx, id, now.UTC(), actor.UserID)
	if err != nil {
		return fee.FeeResponse{}, err
	}

	s.metrics.PaymentRecorded(metrics.LedgerFee)
	slog.Info("Fee entry paid", "fee_id", paid.ID, "amount", paid.Amount.String(), "actor", actor.String())
	return fee.ToResponse(paid, now), nil
}

func (s *FeeServiceImpl) GetFee(ctx context.Context, id string) (fee.FeeResponse, error) {
	e, err := s.feeRepo.GetByID(ctx, id)
	if err != nil {
		return fee.FeeResponse{}, err
	}
	return fee.ToResponse(e, s.now()), nil
}

func (s *FeeServiceImpl) ListFees(ctx context.Context, filter fee.FeeFilter) (fee.ListFeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return fee.ListFeeResponse{}, err
	}
	filter.AsOf = s.now()

	entries, total, err := s.feeRepo.List(ctx, filter)
	if err != nil {
		return fee.ListFeeResponse{}, fmt.Errorf("failed to list fee entries: %w", err)
	}

	resp := fee.ListFeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
		Fees:       make([]fee.FeeResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Fees = append(resp.Fees, fee.ToResponse(e, filter.AsOf))
	}
	return resp, nil
}

// UpdateFee edits the remarks of an entry. The amount is a billing snapshot
// and stays fixed.
func (s *FeeServiceImpl) UpdateFee(ctx context.Context, actor user.Actor, req fee.UpdateFeeRequest) (fee.FeeResponse, error) {
	if err := actor.Validate(); err != nil {
		return fee.FeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return fee.FeeResponse{}, err
	}

	updated, err := s.feeRepo.UpdateRemarks(ctx, req.ID, req.Remarks)
	if err != nil {
		return fee.FeeResponse{}, err
	}
	return fee.ToResponse(updated, s.now()), nil
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
