package tasks

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTaskNotFound = errors.New("task not found")

type PostgresRepository struct {
	Pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{Pool: pool}
}

const createTasksSQL = `
CREATE TABLE IF NOT EXISTS tasks (
  id bigserial PRIMARY KEY,
  text text NOT NULL,
  formatted_text text NOT NULL,
  date date NOT NULL,
  time time NOT NULL,
  event_type text NOT NULL,
  completed boolean NOT NULL DEFAULT false,
  created_at timestamptz NOT NULL DEFAULT now()
)`

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.Pool.Exec(ctx, createTasksSQL)
	return err
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Task, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT id, text, formatted_text,
		        to_char(date, 'YYYY-MM-DD'), to_char(time, 'HH24:MI'),
		        event_type, completed, created_at
		 FROM tasks
		 ORDER BY date, time`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Task, 0)
	for rows.Next() {
		var t Task
		if err := rows.Scan(
			&t.ID,
			&t.Text,
			&t.FormattedText,
			&t.Date,
			&t.Time,
			&t.EventType,
			&t.Completed,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, task Task) (int64, error) {
	var id int64
	err := r.Pool.QueryRow(ctx,
		`INSERT INTO tasks (text, formatted_text, date, time, event_type, completed)
		 VALUES ($1, $2, $3::date, $4::time, $5, $6)
		 RETURNING id`,
		task.Text, task.FormattedText, task.Date, task.Time, task.EventType, task.Completed,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresRepository) SetCompleted(ctx context.Context, id int64, completed bool) error {
	res, err := r.Pool.Exec(ctx,
		`UPDATE tasks SET completed = $2 WHERE id = $1`,
		id, completed,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}
