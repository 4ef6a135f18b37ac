package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"go-task-manager/backend/internal/filter"
	"go-task-manager/backend/internal/models"
)

const selectTaskColumns = `
SELECT
  t.id, t.title, t.description, t.is_completed, t.created_at, t.due_date,
  t.user_id, t.category_id, t.priority,
  c.name AS category_name
FROM tasks t
LEFT JOIN categories c ON c.id = t.category_id`

// TaskRepository はタスクの永続化を扱います。読み取りは常に所有者で絞り込まれます。
type TaskRepository interface {
	FindByID(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error)
	Query(ctx context.Context, q filter.TaskQuery) ([]models.Task, int, error)
	Count(ctx context.Context) (int, error)
	Add(ctx context.Context, task *models.Task) error
	Save(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, task *models.Task) error
}

type SQLTaskRepository struct {
	db sqlx.ExtContext
}

type taskRow struct {
	ID           uuid.UUID      `db:"id"`
	Title        string         `db:"title"`
	Description  sql.NullString `db:"description"`
	IsCompleted  bool           `db:"is_completed"`
	CreatedAt    time.Time      `db:"created_at"`
	DueDate      sql.NullTime   `db:"due_date"`
	UserID       uuid.UUID      `db:"user_id"`
	CategoryID   uuid.NullUUID  `db:"category_id"`
	Priority     int            `db:"priority"`
	CategoryName sql.NullString `db:"category_name"`
}

var _ TaskRepository = (*SQLTaskRepository)(nil)

// NewTaskRepository は新しいSQLTaskRepositoryを作成します。
func NewTaskRepository(db sqlx.ExtContext) *SQLTaskRepository {
	return &SQLTaskRepository{db: db}
}

func (r *SQLTaskRepository) FindByID(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error) {
	var row taskRow
	query := selectTaskColumns + " WHERE t.id = ? AND t.user_id = ?"
	if err := sqlx.GetContext(ctx, r.db, &row, query, taskID, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("could not find task: %w", err)
	}
	task := mapTaskRow(row)
	return &task, nil
}

// Query は絞り込み後の件数と、並び替え・ページングしたタスクを返します。
func (r *SQLTaskRepository) Query(ctx context.Context, q filter.TaskQuery) ([]models.Task, int, error) {
	q = q.Normalize()
	where, args := q.Where()

	var total int
	countQuery := "SELECT COUNT(*) FROM tasks t WHERE " + where
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("could not count tasks: %w", err)
	}

	pageQuery := selectTaskColumns + " WHERE " + where + " ORDER BY " + filter.TaskOrder + " LIMIT ? OFFSET ?"
	pageArgs := append(append([]any{}, args...), q.Limit(), q.Offset())

	var rows []taskRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, pageQuery, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("could not query tasks: %w", err)
	}

	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRow(row))
	}
	return tasks, total, nil
}

func (r *SQLTaskRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, "SELECT COUNT(*) FROM tasks"); err != nil {
		return 0, fmt.Errorf("could not count tasks: %w", err)
	}
	return total, nil
}

func (r *SQLTaskRepository) Add(ctx context.Context, task *models.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, is_completed, created_at, due_date, user_id, category_id, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, nullString(task.Description), task.IsCompleted, task.CreatedAt,
		nullTime(task.DueDate), task.UserID, nullUUID(task.CategoryID), int(task.Priority),
	)
	if err != nil {
		return fmt.Errorf("could not insert task: %w", err)
	}
	return nil
}

// Save は作成日時と所有者以外のフィールドを書き戻します。
// MySQLは値が変わらない行を更新件数に数えないため、件数は確認しません。
func (r *SQLTaskRepository) Save(ctx context.Context, task *models.Task) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, is_completed = ?, due_date = ?, category_id = ?, priority = ?
		WHERE id = ? AND user_id = ?`,
		task.Title, nullString(task.Description), task.IsCompleted, nullTime(task.DueDate),
		nullUUID(task.CategoryID), int(task.Priority), task.ID, task.UserID,
	)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}
	return nil
}

func (r *SQLTaskRepository) Delete(ctx context.Context, task *models.Task) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND user_id = ?", task.ID, task.UserID)
	if err != nil {
		return fmt.Errorf("could not delete task: %w", err)
	}
	return requireAffected(result, ErrTaskNotFound)
}

func mapTaskRow(row taskRow) models.Task {
	task := models.Task{
		ID:          row.ID,
		Title:       row.Title,
		IsCompleted: row.IsCompleted,
		CreatedAt:   row.CreatedAt,
		UserID:      row.UserID,
		Priority:    models.Priority(row.Priority),
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}

	if row.CategoryID.Valid {
		value := row.CategoryID.UUID
		task.CategoryID = &value
		if row.CategoryName.Valid {
			name := row.CategoryName.String
			task.CategoryName = &name
		}
	}

	return task
}

// requireAffected は削除件数が0なら notFound を返します。
func requireAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
