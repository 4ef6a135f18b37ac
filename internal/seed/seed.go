// Package seed は初回起動時の初期データ（管理者、カテゴリ、サンプルタスク）を投入します。
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-task-manager/backend/internal/models"
	"go-task-manager/backend/internal/repositories"
	"go-task-manager/backend/internal/services"
)

const (
	adminUsername = "Admin"
	guestUsername = "GuestUser"
	guestEmail    = "guest@domain.com"
	guestPassword = "Guest@123"
)

var defaultCategories = []string{"work", "personal", "marketing", "health"}

type Options struct {
	AdminEmail    string
	AdminPassword string
}

// Run は各テーブルが空の場合のみデータを投入します。何度実行しても重複しません。
func Run(ctx context.Context, uow repositories.UnitOfWork, opts Options, logger *zap.Logger) error {
	return uow.Do(ctx, func(tx repositories.UnitOfWork) error {
		admin, err := seedAdmin(ctx, tx, opts, logger)
		if err != nil {
			return err
		}
		if err := seedCategories(ctx, tx, logger); err != nil {
			return err
		}
		if err := seedTasks(ctx, tx, admin, logger); err != nil {
			return err
		}

		users, err := tx.Users().Count(ctx)
		if err != nil {
			return err
		}
		logger.Info("seed finished", zap.Int("users", users))
		return nil
	})
}

func seedAdmin(ctx context.Context, tx repositories.UnitOfWork, opts Options, logger *zap.Logger) (*models.User, error) {
	admin, err := tx.Users().FindByLogin(ctx, opts.AdminEmail)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	admin, err = createUser(ctx, tx, adminUsername, opts.AdminEmail, opts.AdminPassword, models.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("could not seed admin: %w", err)
	}
	logger.Info("seeded admin user", zap.String("email", opts.AdminEmail))
	return admin, nil
}

func seedCategories(ctx context.Context, tx repositories.UnitOfWork, logger *zap.Logger) error {
	n, err := tx.Categories().Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := time.Now().UTC().Truncate(time.Second)
	for _, name := range defaultCategories {
		category := &models.Category{ID: uuid.New(), Name: name, CreatedAt: now}
		if err := tx.Categories().Add(ctx, category); err != nil {
			return fmt.Errorf("could not seed category %s: %w", name, err)
		}
	}
	logger.Info("seeded categories", zap.Int("count", len(defaultCategories)))
	return nil
}

func seedTasks(ctx context.Context, tx repositories.UnitOfWork, admin *models.User, logger *zap.Logger) error {
	n, err := tx.Tasks().Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	categories, err := tx.Categories().List(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]uuid.UUID, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.ID
	}

	guest, err := tx.Users().FindByLogin(ctx, guestEmail)
	if errors.Is(err, repositories.ErrUserNotFound) {
		guest, err = createUser(ctx, tx, guestUsername, guestEmail, guestPassword, models.RoleGuest)
	}
	if err != nil {
		return fmt.Errorf("could not seed guest user: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	dueIn := func(days int) *time.Time {
		t := now.AddDate(0, 0, days)
		return &t
	}
	text := func(s string) *string { return &s }
	category := func(name string) *uuid.UUID {
		id, ok := byName[name]
		if !ok {
			return nil
		}
		return &id
	}

	tasks := []models.Task{
		{Title: "create users interface", Description: text("design interface"), UserID: admin.ID, Priority: models.PriorityHigh, CategoryID: category("work")},
		{Title: "buy needs for office", DueDate: dueIn(3), UserID: admin.ID, Priority: models.PriorityMedium, CategoryID: category("marketing")},
		{Title: "meeting work team", Description: text("check project progress"), UserID: admin.ID, Priority: models.PriorityHigh, CategoryID: category("work")},
		{Title: "morning run", DueDate: dueIn(1), UserID: admin.ID, Priority: models.PriorityLow, CategoryID: category("health")},
		{Title: "read a book", Description: text("finish the current chapter"), UserID: guest.ID, Priority: models.PriorityLow, CategoryID: category("personal")},
	}

	for i := range tasks {
		task := tasks[i]
		task.ID = uuid.New()
		// 並び順が決まるよう1秒ずつずらす
		task.CreatedAt = now.Add(time.Duration(i) * time.Second)
		if err := tx.Tasks().Add(ctx, &task); err != nil {
			return fmt.Errorf("could not seed task %q: %w", task.Title, err)
		}
	}
	logger.Info("seeded tasks", zap.Int("count", len(tasks)))
	return nil
}

func createUser(ctx context.Context, tx repositories.UnitOfWork, username, email, password string, role models.Role) (*models.User, error) {
	hash, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Roles:        []models.Role{role},
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := tx.Users().Add(ctx, user); err != nil {
		return nil, err
	}
	if err := tx.Users().AddRole(ctx, user.ID, role); err != nil {
		return nil, err
	}
	return user, nil
}
