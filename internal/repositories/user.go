package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"go-task-manager/backend/internal/models"
)

// UserRepository はユーザーとロールの永続化を扱います。
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// FindByLogin はユーザー名またはメールアドレスで検索します。大文字小文字は区別しません。
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int, error)
	Add(ctx context.Context, user *models.User) error
	AddRole(ctx context.Context, userID uuid.UUID, role models.Role) error
}

type SQLUserRepository struct {
	db sqlx.ExtContext
}

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type userRoleRow struct {
	UserID   uuid.UUID `db:"user_id"`
	RoleName string    `db:"role_name"`
}

const selectUserColumns = "SELECT id, username, email, password_hash, created_at FROM users"

var _ UserRepository = (*SQLUserRepository)(nil)

// NewUserRepository は新しいSQLUserRepositoryを作成します。
func NewUserRepository(db sqlx.ExtContext) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

func (r *SQLUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.findOne(ctx, selectUserColumns+" WHERE id = ?", id)
}

func (r *SQLUserRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	return r.findOne(ctx, selectUserColumns+" WHERE LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?)", login, login)
}

func (r *SQLUserRepository) findOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	var row userRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %w", err)
	}

	roles, err := r.rolesOf(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	user := row.toModel()
	user.Roles = roles
	return &user, nil
}

func (r *SQLUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER(?)", email)
}

func (r *SQLUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "SELECT COUNT(*) FROM users WHERE LOWER(username) = LOWER(?)", username)
}

func (r *SQLUserRepository) exists(ctx context.Context, query string, arg string) (bool, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.db, &n, query, arg); err != nil {
		return false, fmt.Errorf("could not check user: %w", err)
	}
	return n > 0, nil
}

// List は全ユーザーを作成日時順に返します。
func (r *SQLUserRepository) List(ctx context.Context) ([]models.User, error) {
	var rows []userRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, selectUserColumns+" ORDER BY created_at, username"); err != nil {
		return nil, fmt.Errorf("could not list users: %w", err)
	}

	var roleRows []userRoleRow
	if err := sqlx.SelectContext(ctx, r.db, &roleRows, "SELECT user_id, role_name FROM user_roles ORDER BY role_name"); err != nil {
		return nil, fmt.Errorf("could not list user roles: %w", err)
	}
	rolesByUser := make(map[uuid.UUID][]models.Role, len(rows))
	for _, rr := range roleRows {
		rolesByUser[rr.UserID] = append(rolesByUser[rr.UserID], models.Role(rr.RoleName))
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		user := row.toModel()
		user.Roles = rolesByUser[row.ID]
		users = append(users, user)
	}
	return users, nil
}

func (r *SQLUserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.db, &n, "SELECT COUNT(*) FROM users"); err != nil {
		return 0, fmt.Errorf("could not count users: %w", err)
	}
	return n, nil
}

func (r *SQLUserRepository) Add(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("could not insert user: %w", err)
	}
	return nil
}

func (r *SQLUserRepository) AddRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	_, err := r.db.ExecContext(ctx, "INSERT INTO user_roles (user_id, role_name) VALUES (?, ?)", userID, string(role))
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("could not assign role: %w", err)
	}
	return nil
}

func (r *SQLUserRepository) rolesOf(ctx context.Context, userID uuid.UUID) ([]models.Role, error) {
	var names []string
	if err := sqlx.SelectContext(ctx, r.db, &names, "SELECT role_name FROM user_roles WHERE user_id = ? ORDER BY role_name", userID); err != nil {
		return nil, fmt.Errorf("could not load roles: %w", err)
	}
	roles := make([]models.Role, 0, len(names))
	for _, name := range names {
		roles = append(roles, models.Role(name))
	}
	return roles, nil
}

func (row userRow) toModel() models.User {
	return models.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}
}
