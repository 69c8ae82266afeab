package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Times are read back as "HH:MM" text; TIME columns are written from the same text.
const scheduleColumns = `
	id, class_id, subject_id, tutor_id, date,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	status, room, notes, created_by, created_at, updated_at`

func scanSchedule(row pgx.Row) (schedule.ClassSchedule, error) {
	var s schedule.ClassSchedule
	err := row.Scan(
		&s.ID, &s.ClassID, &s.SubjectID, &s.TutorID, &s.Date,
		&s.StartTime, &s.EndTime,
		&s.Status, &s.Room, &s.Notes, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *scheduleRepository) Create(ctx context.Context, s schedule.ClassSchedule) (schedule.ClassSchedule, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return schedule.ClassSchedule{}, fmt.Errorf("failed to generate schedule id: %w", err)
		}
		s.ID = id.String()
	}

	query := `
		INSERT INTO class_schedules (
			id, class_id, subject_id, tutor_id, date, start_time, end_time,
			status, room, notes, created_by
		) VALUES ($1, $2, $3, $4, $5, $6::text::time, $7::text::time, $8, $9, $10, $11)
		RETURNING ` + scheduleColumns

	created, err := scanSchedule(q.QueryRow(ctx, query,
		s.ID, s.ClassID, s.SubjectID, s.TutorID, s.Date, s.StartTime, s.EndTime,
		s.Status, s.Room, s.Notes, s.CreatedBy,
	))
	if err != nil {
		return schedule.ClassSchedule{}, fmt.Errorf("failed to create class schedule: %w", err)
	}
	return created, nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (schedule.ClassSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleColumns + ` FROM class_schedules WHERE id = $1`
	s, err := scanSchedule(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return schedule.ClassSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.ClassSchedule{}, fmt.Errorf("failed to get class schedule: %w", err)
	}
	return s, nil
}

func (r *scheduleRepository) List(ctx context.Context, filter schedule.ScheduleFilter) ([]schedule.ClassSchedule, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM class_schedules WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.From != nil {
		baseQuery += fmt.Sprintf(" AND date >= $%d::date", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		baseQuery += fmt.Sprintf(" AND date <= $%d::date", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.ClassID != nil {
		baseQuery += fmt.Sprintf(" AND class_id::text = $%d", argIdx)
		args = append(args, *filter.ClassID)
		argIdx++
	}
	if filter.SubjectID != nil {
		baseQuery += fmt.Sprintf(" AND subject_id::text = $%d", argIdx)
		args = append(args, *filter.SubjectID)
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
		return nil, 0, fmt.Errorf("failed to count class schedules: %w", err)
	}

	limit, offset := pageWindow(filter.Page, filter.Limit)
	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY date, start_time, id LIMIT $%d OFFSET $%d`,
		scheduleColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list class schedules: %w", err)
	}
	defer rows.Close()

	schedules := []schedule.ClassSchedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan class schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate class schedules: %w", err)
	}
	return schedules, totalCount, nil
}

func (r *scheduleRepository) Update(ctx context.Context, id string, fn func(*schedule.ClassSchedule) error) (schedule.ClassSchedule, error) {
	var updated schedule.ClassSchedule
	err := inTx(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		current, err := scanSchedule(q.QueryRow(ctx,
			`SELECT `+scheduleColumns+` FROM class_schedules WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if isNoRows(err) {
				return schedule.ErrScheduleNotFound
			}
			return fmt.Errorf("failed to lock class schedule: %w", err)
		}

		if err := fn(&current); err != nil {
			return err
		}

		query := `
			UPDATE class_schedules
			SET date = $2, start_time = $3::text::time, end_time = $4::text::time, tutor_id = $5,
			    status = $6, room = $7, notes = $8, updated_at = NOW()
			WHERE id = $1
			RETURNING ` + scheduleColumns
		updated, err = scanSchedule(q.QueryRow(ctx, query,
			id, current.Date, current.StartTime, current.EndTime, current.TutorID,
			current.Status, current.Room, current.Notes,
		))
		if err != nil {
			return fmt.Errorf("failed to update class schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		return schedule.ClassSchedule{}, err
	}
	return updated, nil
}

// Delete relies on ON DELETE CASCADE to drop the schedule's attendance records.
func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM class_schedules WHERE id = $1`, id)
	if err != nil {
		if isNoRows(err) {
			return schedule.ErrScheduleNotFound
		}
		return fmt.Errorf("failed to delete class schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}

// pageWindow converts page/limit into LIMIT/OFFSET with the list defaults applied.
func pageWindow(page, limit int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}
