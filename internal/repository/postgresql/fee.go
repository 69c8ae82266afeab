package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/fee"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/period"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type feeRepository struct {
	db *database.DB
}

func NewFeeRepository(db *database.DB) fee.FeeRepository {
	return &feeRepository{db: db}
}

const feeColumns = `
	id, student_id, subject_id, billing_month, amount, due_date, status,
	paid_date, paid_by, remarks, created_by, created_at, updated_at`

func scanFee(row pgx.Row) (fee.FeeEntry, error) {
	var e fee.FeeEntry
	err := row.Scan(
		&e.ID, &e.StudentID, &e.SubjectID, &e.BillingMonth, &e.Amount, &e.DueDate, &e.Status,
		&e.PaidDate, &e.PaidBy, &e.Remarks, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Create relies on the unique (student, subject, month) constraint, so two
// concurrent generation runs can never both insert the same entry.
func (r *feeRepository) Create(ctx context.Context, e fee.FeeEntry) (fee.FeeEntry, error) {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fee.FeeEntry{}, fmt.Errorf("failed to generate fee id: %w", err)
		}
		e.ID = id.String()
	}

	query := `
		INSERT INTO fee_entries (
			id, student_id, subject_id, billing_month, amount, due_date, status, remarks, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT ON CONSTRAINT uk_fee_student_subject_month DO NOTHING
		RETURNING ` + feeColumns

	created, err := scanFee(q.QueryRow(ctx, query,
		e.ID, e.StudentID, e.SubjectID, e.BillingMonth, e.Amount, e.DueDate, e.Status, e.Remarks, e.CreatedBy,
	))
	if err != nil {
		if isNoRows(err) || isUniqueViolation(err) {
			return fee.FeeEntry{}, fee.ErrFeeEntryExists
		}
		return fee.FeeEntry{}, fmt.Errorf("failed to create fee entry: %w", err)
	}
	return created, nil
}

func (r *feeRepository) GetByID(ctx context.Context, id string) (fee.FeeEntry, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanFee(q.QueryRow(ctx, `SELECT `+feeColumns+` FROM fee_entries WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return fee.FeeEntry{}, fee.ErrFeeEntryNotFound
		}
		return fee.FeeEntry{}, fmt.Errorf("failed to get fee entry: %w", err)
	}
	return e, nil
}

func (r *feeRepository) List(ctx context.Context, filter fee.FeeFilter) ([]fee.FeeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	asOf := filter.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}
	y, m, d := asOf.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	baseQuery := ` FROM fee_entries WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Month != nil {
		baseQuery += fmt.Sprintf(" AND billing_month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.StudentID != nil {
		baseQuery += fmt.Sprintf(" AND student_id::text = $%d", argIdx)
		args = append(args, *filter.StudentID)
		argIdx++
	}
	if filter.SubjectID != nil {
		baseQuery += fmt.Sprintf(" AND subject_id::text = $%d", argIdx)
		args = append(args, *filter.SubjectID)
		argIdx++
	}
	if filter.Status != nil {
		switch fee.Status(*filter.Status) {
		case fee.StatusPaid:
			baseQuery += " AND status = 'paid'"
		case fee.StatusPending:
			baseQuery += fmt.Sprintf(" AND status = 'pending' AND due_date >= $%d", argIdx)
			args = append(args, today)
			argIdx++
		case fee.StatusOverdue:
			baseQuery += fmt.Sprintf(" AND status = 'pending' AND due_date < $%d", argIdx)
			args = append(args, today)
			argIdx++
		default:
			return nil, 0, fee.ErrInvalidStatus
		}
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count fee entries: %w", err)
	}

	limit, offset := pageWindow(filter.Page, filter.Limit)
	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY billing_month DESC, student_id, subject_id LIMIT $%d OFFSET $%d`,
		feeColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list fee entries: %w", err)
	}
	defer rows.Close()

	entries := []fee.FeeEntry{}
	for rows.Next() {
		e, err := scanFee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan fee entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate fee entries: %w", err)
	}
	return entries, totalCount, nil
}

// MarkPaid is a single compare-and-set: of two concurrent callers exactly one
// sees a row come back, the other gets ErrFeeAlreadyPaid.
func (r *feeRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time, paidBy string) (fee.FeeEntry, error) {
	q := GetQuerier(ctx, r.db)

	var by *string
	if paidBy != "" {
		by = &paidBy
	}

	query := `
		UPDATE fee_entries
		SET status = 'paid', paid_date = $2, paid_by = $3, updated_at = NOW()
		WHERE id = $1 AND status <> 'paid'
		RETURNING ` + feeColumns

	e, err := scanFee(q.QueryRow(ctx, query, id, paidAt, by))
	if err == nil {
		return e, nil
	}
	if !isNoRows(err) {
		return fee.FeeEntry{}, fmt.Errorf("failed to mark fee entry paid: %w", err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return fee.FeeEntry{}, err
	}
	return fee.FeeEntry{}, fee.ErrFeeAlreadyPaid
}

func (r *feeRepository) UpdateRemarks(ctx context.Context, id string, remarks *string) (fee.FeeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE fee_entries SET remarks = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + feeColumns

	e, err := scanFee(q.QueryRow(ctx, query, id, remarks))
	if err != nil {
		if isNoRows(err) {
			return fee.FeeEntry{}, fee.ErrFeeEntryNotFound
		}
		return fee.FeeEntry{}, fmt.Errorf("failed to update fee remarks: %w", err)
	}
	return e, nil
}

func (r *feeRepository) Totals(ctx context.Context, month period.Month) (fee.Totals, error) {
	q := GetQuerier(ctx, r.db)

	var t fee.Totals
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE status <> 'paid'), 0)
		FROM fee_entries
		WHERE due_date BETWEEN $1 AND $2
	`, month.FirstDay(), month.LastDay()).Scan(&t.Collected, &t.Pending)
	if err != nil {
		return fee.Totals{}, fmt.Errorf("failed to sum fee entries: %w", err)
	}
	return t, nil
}
