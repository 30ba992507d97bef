// repositories/shift_repository.go

package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/evn/shiftpay_backendl/internal/models"
)

const shiftColumns = `
	id, user_id, date, scheduled_start, scheduled_end, actual_start, actual_end,
	lunch_start, lunch_end, is_holiday, COALESCE(job, ''), status,
	COALESCE(mood, ''), energy_level, breaks_taken, COALESCE(notes, ''),
	created_at, updated_at`

type ShiftRepository struct {
	db *sql.DB
}

func NewShiftRepository(db *sql.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// GetByRange возвращает смены пользователя за включительный диапазон дат.
// Порядок фиксированный — дата, затем фактическое начало: агрегатор
// оплаты чувствителен к порядку смен.
func (r *ShiftRepository) GetByRange(ctx context.Context, userID int, from, to time.Time) ([]models.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC, actual_start ASC NULLS LAST, id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []models.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

func (r *ShiftRepository) GetByID(ctx context.Context, id, userID int) (models.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE id = $1 AND user_id = $2`
	return scanShift(r.db.QueryRowContext(ctx, query, id, userID))
}

// GetActive возвращает открытую смену пользователя (начата, но не
// завершена) или sql.ErrNoRows.
func (r *ShiftRepository) GetActive(ctx context.Context, userID int) (models.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE user_id = $1 AND actual_start IS NOT NULL AND actual_end IS NULL
		ORDER BY actual_start DESC
		LIMIT 1`
	return scanShift(r.db.QueryRowContext(ctx, query, userID))
}

func (r *ShiftRepository) Create(ctx context.Context, s *models.Shift) error {
	query := `
		INSERT INTO shifts (user_id, date, scheduled_start, scheduled_end,
			actual_start, actual_end, lunch_start, lunch_end, is_holiday,
			job, status, mood, energy_level, breaks_taken, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, NULLIF($12, ''), $13, $14, NULLIF($15, ''))
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		s.UserID, s.Date, s.ScheduledStart, s.ScheduledEnd,
		s.ActualStart, s.ActualEnd, s.LunchStart, s.LunchEnd, s.IsHoliday,
		s.Job, s.Status, s.Mood, s.EnergyLevel, s.BreaksTaken, s.Notes,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *ShiftRepository) Update(ctx context.Context, s *models.Shift) error {
	query := `
		UPDATE shifts SET
			date = $1, scheduled_start = $2, scheduled_end = $3,
			actual_start = $4, actual_end = $5, lunch_start = $6, lunch_end = $7,
			is_holiday = $8, job = NULLIF($9, ''), status = $10,
			mood = NULLIF($11, ''), energy_level = $12, breaks_taken = $13,
			notes = NULLIF($14, ''), updated_at = NOW()
		WHERE id = $15 AND user_id = $16
		RETURNING updated_at`
	return r.db.QueryRowContext(ctx, query,
		s.Date, s.ScheduledStart, s.ScheduledEnd,
		s.ActualStart, s.ActualEnd, s.LunchStart, s.LunchEnd,
		s.IsHoliday, s.Job, s.Status,
		s.Mood, s.EnergyLevel, s.BreaksTaken, s.Notes,
		s.ID, s.UserID,
	).Scan(&s.UpdatedAt)
}

func (r *ShiftRepository) Delete(ctx context.Context, id, userID int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM shifts WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShift(row rowScanner) (models.Shift, error) {
	var s models.Shift
	err := row.Scan(
		&s.ID, &s.UserID, &s.Date, &s.ScheduledStart, &s.ScheduledEnd,
		&s.ActualStart, &s.ActualEnd, &s.LunchStart, &s.LunchEnd,
		&s.IsHoliday, &s.Job, &s.Status, &s.Mood, &s.EnergyLevel,
		&s.BreaksTaken, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}
