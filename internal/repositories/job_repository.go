// repositories/job_repository.go

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/evn/shiftpay_backendl/internal/models"
)

// JobRepository хранит работы пользователя и их ставки. Реализует
// paycalc.RateSource.
type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// PayRate возвращает ставку для работы jobName. Пустое имя или
// неизвестная работа — ставка пользователя по умолчанию.
func (r *JobRepository) PayRate(ctx context.Context, userID int, jobName string) (float64, error) {
	if jobName != "" {
		var rate float64
		err := r.db.QueryRowContext(ctx,
			"SELECT pay_rate FROM user_jobs WHERE user_id = $1 AND job_name = $2",
			userID, jobName,
		).Scan(&rate)
		if err == nil {
			return rate, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, err
		}
		// работа не найдена — падаем на ставку по умолчанию
	}

	var rate float64
	err := r.db.QueryRowContext(ctx,
		"SELECT default_pay_rate FROM users WHERE id = $1", userID,
	).Scan(&rate)
	if err != nil {
		return 0, err
	}
	return rate, nil
}

func (r *JobRepository) List(ctx context.Context, userID int) ([]models.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, job_name, pay_rate FROM user_jobs WHERE user_id = $1 ORDER BY job_name",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(&j.ID, &j.UserID, &j.JobName, &j.PayRate); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) Create(ctx context.Context, j *models.Job) error {
	return r.db.QueryRowContext(ctx,
		"INSERT INTO user_jobs (user_id, job_name, pay_rate) VALUES ($1, $2, $3) RETURNING id",
		j.UserID, j.JobName, j.PayRate,
	).Scan(&j.ID)
}

func (r *JobRepository) UpdateRate(ctx context.Context, userID int, jobName string, rate float64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE user_jobs SET pay_rate = $1 WHERE user_id = $2 AND job_name = $3",
		rate, userID, jobName)
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

func (r *JobRepository) Delete(ctx context.Context, userID int, jobName string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM user_jobs WHERE user_id = $1 AND job_name = $2", userID, jobName)
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

// SetDefaultRate обновляет базовую ставку пользователя.
func (r *JobRepository) SetDefaultRate(ctx context.Context, userID int, rate float64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET default_pay_rate = $1, updated_at = NOW() WHERE id = $2", rate, userID)
	return err
}
