package services_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"go-task-manager/backend/internal/filter"
	"go-task-manager/backend/internal/models"
	"go-task-manager/backend/internal/repositories"
)

type mockUnitOfWork struct {
	tasks      *mockTaskRepository
	categories *mockCategoryRepository
	users      *mockUserRepository
}

func newMockUnitOfWork() *mockUnitOfWork {
	return &mockUnitOfWork{
		tasks:      new(mockTaskRepository),
		categories: new(mockCategoryRepository),
		users:      new(mockUserRepository),
	}
}

func (m *mockUnitOfWork) Tasks() repositories.TaskRepository { return m.tasks }
func (m *mockUnitOfWork) Categories() repositories.CategoryRepository { return m.categories }
func (m *mockUnitOfWork) Users() repositories.UserRepository { return m.users }

func (m *mockUnitOfWork) Do(ctx context.Context, fn func(repositories.UnitOfWork) error) error {
	return fn(m)
}

type mockTaskRepository struct{ mock.Mock }

func (m *mockTaskRepository) FindByID(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}

func (m *mockTaskRepository) Query(ctx context.Context, q filter.TaskQuery) ([]models.Task, int, error) {
	args := m.Called(ctx, q)
	tasks, _ := args.Get(0).([]models.Task)
	return tasks, args.Int(1), args.Error(2)
}

func (m *mockTaskRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockTaskRepository) Add(ctx context.Context, task *models.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockTaskRepository) Save(ctx context.Context, task *models.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockTaskRepository) Delete(ctx context.Context, task *models.Task) error {
	return m.Called(ctx, task).Error(0)
}

type mockCategoryRepository struct{ mock.Mock }

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *mockCategoryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryRepository) Query(ctx context.Context, q filter.CategoryQuery) ([]models.Category, int, error) {
	args := m.Called(ctx, q)
	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Int(1), args.Error(2)
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Error(1)
}

func (m *mockCategoryRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockCategoryRepository) Add(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepository) Save(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepository) DeleteDetachingTasks(ctx context.Context, category *models.Category) (int64, error) {
	args := m.Called(ctx, category)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

type mockUserRepository struct{ mock.Mock }

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *mockUserRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockUserRepository) Add(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) AddRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	return m.Called(ctx, userID, role).Error(0)
}

type mockTokenGenerator struct{ mock.Mock }

func (m *mockTokenGenerator) GenerateToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}
