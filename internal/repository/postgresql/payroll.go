package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/period"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// net_salary is a generated column and is never written.
const salaryColumns = `
	id, tutor_id, month, base_amount, allowances, bonus, deductions, status,
	payment_date, paid_by, remarks, created_by, created_at, updated_at`

func scanSalary(row pgx.Row) (payroll.SalaryEntry, error) {
	var e payroll.SalaryEntry
	err := row.Scan(
		&e.ID, &e.TutorID, &e.Month, &e.BaseAmount, &e.Allowances, &e.Bonus, &e.Deductions, &e.Status,
		&e.PaymentDate, &e.PaidBy, &e.Remarks, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// ========== SALARY ENTRIES ==========

func (r *payrollRepository) CreateSalaryEntry(ctx context.Context, e payroll.SalaryEntry) (payroll.SalaryEntry, error) {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return payroll.SalaryEntry{}, fmt.Errorf("failed to generate salary id: %w", err)
		}
		e.ID = id.String()
	}

	query := `
		INSERT INTO salary_entries (
			id, tutor_id, month, base_amount, allowances, bonus, deductions, status, remarks, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT ON CONSTRAINT uk_salary_tutor_month DO NOTHING
		RETURNING ` + salaryColumns

	created, err := scanSalary(q.QueryRow(ctx, query,
		e.ID, e.TutorID, e.Month, e.BaseAmount, e.Allowances, e.Bonus, e.Deductions, e.Status, e.Remarks, e.CreatedBy,
	))
	if err != nil {
		if isNoRows(err) || isUniqueViolation(err) {
			return payroll.SalaryEntry{}, payroll.ErrSalaryEntryExists
		}
		return payroll.SalaryEntry{}, fmt.Errorf("failed to create salary entry: %w", err)
	}
	return created, nil
}

func (r *payrollRepository) GetSalaryEntryByID(ctx context.Context, id string) (payroll.SalaryEntry, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanSalary(q.QueryRow(ctx, `SELECT `+salaryColumns+` FROM salary_entries WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return payroll.SalaryEntry{}, payroll.ErrSalaryEntryNotFound
		}
		return payroll.SalaryEntry{}, fmt.Errorf("failed to get salary entry: %w", err)
	}
	return e, nil
}

func (r *payrollRepository) ListSalaryEntries(ctx context.Context, filter payroll.SalaryFilter) ([]payroll.SalaryEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM salary_entries WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Month != nil {
		baseQuery += fmt.Sprintf(" AND month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.TutorID != nil {
		baseQuery += fmt.Sprintf(" AND tutor_id::text = $%d", argIdx)
		args = append(args, *filter.TutorID)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary entries: %w", err)
	}

	limit, offset := pageWindow(filter.Page, filter.Limit)
	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY month DESC, tutor_id LIMIT $%d OFFSET $%d`,
		salaryColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salary entries: %w", err)
	}
	defer rows.Close()

	entries := []payroll.SalaryEntry{}
	for rows.Next() {
		e, err := scanSalary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate salary entries: %w", err)
	}
	return entries, totalCount, nil
}

func (r *payrollRepository) UpdateSalaryEntry(ctx context.Context, id string, fn func(*payroll.SalaryEntry) error) (payroll.SalaryEntry, error) {
	var updated payroll.SalaryEntry
	err := inTx(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		current, err := scanSalary(q.QueryRow(ctx,
			`SELECT `+salaryColumns+` FROM salary_entries WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if isNoRows(err) {
				return payroll.ErrSalaryEntryNotFound
			}
			return fmt.Errorf("failed to lock salary entry: %w", err)
		}

		if err := fn(&current); err != nil {
			return err
		}

		query := `
			UPDATE salary_entries
			SET base_amount = $2, allowances = $3, bonus = $4, deductions = $5,
			    status = $6, payment_date = $7, paid_by = $8, remarks = $9, updated_at = NOW()
			WHERE id = $1
			RETURNING ` + salaryColumns
		updated, err = scanSalary(q.QueryRow(ctx, query,
			id, current.BaseAmount, current.Allowances, current.Bonus, current.Deductions,
			current.Status, current.PaymentDate, current.PaidBy, current.Remarks,
		))
		if err != nil {
			return fmt.Errorf("failed to update salary entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.SalaryEntry{}, err
	}
	return updated, nil
}

// ========== AGGREGATIONS ==========

func (r *payrollRepository) GetPayrollSummary(ctx context.Context, month period.Month) (payroll.PayrollSummary, error) {
	q := GetQuerier(ctx, r.db)

	summary := payroll.PayrollSummary{Month: month.String()}
	err := q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(base_amount), 0),
		       COALESCE(SUM(allowances), 0),
		       COALESCE(SUM(bonus), 0),
		       COALESCE(SUM(deductions), 0),
		       COALESCE(SUM(net_salary), 0),
		       COUNT(*) FILTER (WHERE status = 'Paid'),
		       COALESCE(SUM(net_salary) FILTER (WHERE status = 'Paid'), 0),
		       COALESCE(SUM(net_salary) FILTER (WHERE status <> 'Paid'), 0)
		FROM salary_entries
		WHERE month = $1
	`, summary.Month).Scan(
		&summary.EntryCount, &summary.TotalBase, &summary.TotalAllowances, &summary.TotalBonus,
		&summary.TotalDeductions, &summary.TotalNet, &summary.PaidCount, &summary.PaidNet, &summary.OutstandingNet,
	)
	if err != nil {
		return payroll.PayrollSummary{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}
	return summary, nil
}
