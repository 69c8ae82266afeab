package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/database"
)

type analyticsRepository struct {
	db *database.DB
}

func NewAnalyticsRepository(db *database.DB) analytics.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// DailyCounts groups on the schedule date, so a session's attendance counts
// for the day it was held regardless of when it was recorded.
func (r *analyticsRepository) DailyCounts(ctx context.Context, scope analytics.Scope, from, to time.Time) ([]analytics.DailyCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT cs.date,
		       COUNT(*) FILTER (WHERE ar.status IN ('Present', 'Late')),
		       COUNT(*)
		FROM attendance_records ar
		JOIN class_schedules cs ON cs.id = ar.schedule_id
		WHERE cs.date BETWEEN $1 AND $2
	`
	args := []interface{}{analytics.Day(from), analytics.Day(to)}
	argIdx := 3

	if scope.ClassID != nil && *scope.ClassID != "" {
		query += fmt.Sprintf(" AND cs.class_id::text = $%d", argIdx)
		args = append(args, *scope.ClassID)
		argIdx++
	}
	if scope.SubjectID != nil && *scope.SubjectID != "" {
		query += fmt.Sprintf(" AND cs.subject_id::text = $%d", argIdx)
		args = append(args, *scope.SubjectID)
		argIdx++
	}
	if scope.TutorID != nil && *scope.TutorID != "" {
		query += fmt.Sprintf(" AND cs.tutor_id::text = $%d", argIdx)
		args = append(args, *scope.TutorID)
	}
	query += " GROUP BY cs.date ORDER BY cs.date"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count daily attendance: %w", err)
	}
	defer rows.Close()

	counts := []analytics.DailyCount{}
	for rows.Next() {
		var c analytics.DailyCount
		if err := rows.Scan(&c.Date, &c.Attended, &c.Total); err != nil {
			return nil, fmt.Errorf("failed to scan daily attendance: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily attendance: %w", err)
	}
	return counts, nil
}
