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

// CategoryRepository はカテゴリの永続化を扱います。
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// ExistsByName は excludeID 以外に同名のカテゴリがあるかを返します。
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	Query(ctx context.Context, q filter.CategoryQuery) ([]models.Category, int, error)
	List(ctx context.Context) ([]models.Category, error)
	Count(ctx context.Context) (int, error)
	Add(ctx context.Context, category *models.Category) error
	Save(ctx context.Context, category *models.Category) error
	// DeleteDetachingTasks は参照しているタスクのカテゴリを外してから削除し、外した件数を返します。
	DeleteDetachingTasks(ctx context.Context, category *models.Category) (int64, error)
}

type SQLCategoryRepository struct {
	db sqlx.ExtContext
}

type categoryRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

var _ CategoryRepository = (*SQLCategoryRepository)(nil)

func NewCategoryRepository(db sqlx.ExtContext) *SQLCategoryRepository {
	return &SQLCategoryRepository{db: db}
}

func (r *SQLCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var row categoryRow
	err := sqlx.GetContext(ctx, r.db, &row, "SELECT c.id, c.name, c.created_at FROM categories c WHERE c.id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("could not find category: %w", err)
	}
	category := row.toModel()
	return &category, nil
}

func (r *SQLCategoryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.db, &n, "SELECT COUNT(*) FROM categories WHERE id = ?", id); err != nil {
		return false, fmt.Errorf("could not check category: %w", err)
	}
	return n > 0, nil
}

func (r *SQLCategoryRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := "SELECT COUNT(*) FROM categories WHERE LOWER(name) = LOWER(?)"
	args := []any{name}
	if excludeID != nil {
		query += " AND id <> ?"
		args = append(args, *excludeID)
	}

	var n int
	if err := sqlx.GetContext(ctx, r.db, &n, query, args...); err != nil {
		return false, fmt.Errorf("could not check category name: %w", err)
	}
	return n > 0, nil
}

func (r *SQLCategoryRepository) Query(ctx context.Context, q filter.CategoryQuery) ([]models.Category, int, error) {
	q = q.Normalize()
	where, args := q.Where()
	if where != "" {
		where = " WHERE " + where
	}

	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, "SELECT COUNT(*) FROM categories c"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("could not count categories: %w", err)
	}

	pageQuery := "SELECT c.id, c.name, c.created_at FROM categories c" + where +
		" ORDER BY " + filter.CategoryOrder + " LIMIT ? OFFSET ?"
	pageArgs := append(append([]any{}, args...), q.Limit(), q.Offset())

	var rows []categoryRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, pageQuery, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("could not query categories: %w", err)
	}
	return mapCategoryRows(rows), total, nil
}

// List は全カテゴリを名前順に返します。シード処理で使います。
func (r *SQLCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var rows []categoryRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, "SELECT c.id, c.name, c.created_at FROM categories c ORDER BY "+filter.CategoryOrder); err != nil {
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	return mapCategoryRows(rows), nil
}

func (r *SQLCategoryRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, "SELECT COUNT(*) FROM categories"); err != nil {
		return 0, fmt.Errorf("could not count categories: %w", err)
	}
	return total, nil
}

func (r *SQLCategoryRepository) Add(ctx context.Context, category *models.Category) error {
	_, err := r.db.ExecContext(ctx, "INSERT INTO categories (id, name, created_at) VALUES (?, ?, ?)",
		category.ID, category.Name, category.CreatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("could not insert category: %w", err)
	}
	return nil
}

func (r *SQLCategoryRepository) Save(ctx context.Context, category *models.Category) error {
	_, err := r.db.ExecContext(ctx, "UPDATE categories SET name = ? WHERE id = ?", category.Name, category.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("could not update category: %w", err)
	}
	return nil
}

// DeleteDetachingTasks は外部キーの ON DELETE SET NULL に頼らず明示的に外します。
// 呼び出し側でトランザクションを張ること。
func (r *SQLCategoryRepository) DeleteDetachingTasks(ctx context.Context, category *models.Category) (int64, error) {
	result, err := r.db.ExecContext(ctx, "UPDATE tasks SET category_id = NULL WHERE category_id = ?", category.ID)
	if err != nil {
		return 0, fmt.Errorf("could not detach tasks from category: %w", err)
	}
	detached, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not read detached rows: %w", err)
	}

	result, err = r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", category.ID)
	if err != nil {
		return 0, fmt.Errorf("could not delete category: %w", err)
	}
	if err := requireAffected(result, ErrCategoryNotFound); err != nil {
		return 0, err
	}
	return detached, nil
}

func (row categoryRow) toModel() models.Category {
	return models.Category{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}
}

func mapCategoryRows(rows []categoryRow) []models.Category {
	categories := make([]models.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.toModel())
	}
	return categories
}
