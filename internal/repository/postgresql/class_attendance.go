package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Mark(ctx context.Context, scheduleID string, records []attendance.Record) (schedule.Status, error) {
	var status schedule.Status
	err := inTx(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		// Lock the schedule so concurrent markers serialize on it.
		err := q.QueryRow(ctx, `SELECT status FROM class_schedules WHERE id = $1 FOR UPDATE`, scheduleID).Scan(&status)
		if err != nil {
			if isNoRows(err) {
				return schedule.ErrScheduleNotFound
			}
			return fmt.Errorf("failed to lock class schedule: %w", err)
		}

		upsert := `
			INSERT INTO attendance_records (id, schedule_id, student_id, status, remarks, recorded_by, recorded_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			ON CONFLICT ON CONSTRAINT uk_attendance_schedule_student
			DO UPDATE SET status = EXCLUDED.status,
			              remarks = EXCLUDED.remarks,
			              recorded_by = EXCLUDED.recorded_by,
			              recorded_at = NOW()
		`
		for _, rec := range records {
			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("failed to generate attendance id: %w", err)
			}
			if _, err := q.Exec(ctx, upsert, id.String(), scheduleID, rec.StudentID, rec.Status, rec.Remarks, rec.RecordedBy); err != nil {
				return fmt.Errorf("failed to upsert attendance for student %s: %w", rec.StudentID, err)
			}
		}

		if status == schedule.StatusUpcoming {
			_, err := q.Exec(ctx,
				`UPDATE class_schedules SET status = $2, updated_at = NOW() WHERE id = $1`,
				scheduleID, schedule.StatusCompleted)
			if err != nil {
				return fmt.Errorf("failed to complete class schedule: %w", err)
			}
			status = schedule.StatusCompleted
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

func (r *attendanceRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM class_schedules WHERE id = $1)`, scheduleID).Scan(&exists); err != nil {
		if isNoRows(err) {
			return nil, schedule.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to check class schedule: %w", err)
	}
	if !exists {
		return nil, schedule.ErrScheduleNotFound
	}

	rows, err := q.Query(ctx, `
		SELECT id, schedule_id, student_id, status, remarks, recorded_by, recorded_at
		FROM attendance_records
		WHERE schedule_id = $1
		ORDER BY student_id
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records := []attendance.Record{}
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(&rec.ID, &rec.ScheduleID, &rec.StudentID, &rec.Status, &rec.Remarks, &rec.RecordedBy, &rec.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}
	return records, nil
}
