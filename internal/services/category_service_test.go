package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-task-manager/backend/internal/filter"
	"go-task-manager/backend/internal/models"
	"go-task-manager/backend/internal/repositories"
	"go-task-manager/backend/internal/response"
	"go-task-manager/backend/internal/services"
	"go-task-manager/backend/testutil"
)

func TestCategoryService_CreateAndDuplicate(t *testing.T) {
	db := testutil.NewTestDB(t)
	service := services.NewCategoryService(repositories.NewUnitOfWork(db), zaptest.NewLogger(t))
	ctx := context.Background()

	env := service.Create(ctx, models.CategoryRequest{Name: "  work "})
	require.True(t, env.Success, env.Message)
	created := env.Data.(models.CategoryResponse)
	assert.Equal(t, "work", created.Name)

	env = service.Create(ctx, models.CategoryRequest{Name: "Work"})
	assert.Equal(t, http.StatusBadRequest, env.StatusCode)
	assert.Equal(t, response.MsgCategoryNameTaken, env.Message)

	env = service.Create(ctx, models.CategoryRequest{Name: " "})
	assert.Equal(t, http.StatusBadRequest, env.StatusCode)
	assert.Equal(t, response.MsgCategoryNameBlank, env.Message)
}

func TestCategoryService_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	service := services.NewCategoryService(repositories.NewUnitOfWork(db), zaptest.NewLogger(t))
	ctx := context.Background()
	work := testutil.CreateTestCategory(t, db, "work")
	testutil.CreateTestCategory(t, db, "personal")

	env := service.Update(ctx, work.ID, models.CategoryRequest{Name: "personal"})
	assert.Equal(t, http.StatusBadRequest, env.StatusCode)
	assert.Equal(t, response.MsgCategoryNameTaken, env.Message)

	// 自分と同じ名前への変更は許可
	env = service.Update(ctx, work.ID, models.CategoryRequest{Name: "work"})
	assert.True(t, env.Success, env.Message)

	env = service.Update(ctx, work.ID, models.CategoryRequest{Name: "office"})
	require.True(t, env.Success, env.Message)
	assert.Equal(t, "office", env.Data.(models.CategoryResponse).Name)

	env = service.Update(ctx, uuid.New(), models.CategoryRequest{Name: "ghost"})
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
}

func TestCategoryService_DeleteKeepsTasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	uow := repositories.NewUnitOfWork(db)
	categories := services.NewCategoryService(uow, zaptest.NewLogger(t))
	tasks := services.NewTaskService(uow, zaptest.NewLogger(t))
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, db, "alice", "alice@example.com", "password123", models.RoleOwner)
	work := testutil.CreateTestCategory(t, db, "work")
	task := testutil.CreateTestTask(t, db, owner.ID, "report", time.Now(), func(task *models.Task) {
		task.CategoryID = &work.ID
	})

	env := categories.Delete(ctx, work.ID)
	require.True(t, env.Success, env.Message)

	got := tasks.GetByID(ctx, owner.ID, task.ID)
	require.True(t, got.Success)
	resp := got.Data.(models.TaskResponse)
	assert.Nil(t, resp.CategoryID)
	assert.Nil(t, resp.Category)

	env = categories.GetByID(ctx, work.ID)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)

	env = categories.Delete(ctx, work.ID)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
}

func TestCategoryService_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	service := services.NewCategoryService(repositories.NewUnitOfWork(db), zaptest.NewLogger(t))
	for _, name := range []string{"work", "personal", "health"} {
		testutil.CreateTestCategory(t, db, name)
	}

	env := service.List(context.Background(), filter.CategoryQuery{Page: 1, PageSize: 2})
	require.True(t, env.Success)
	page := env.Data.(models.CategoryPage)
	assert.Equal(t, 3, page.TotalCount)
	require.Len(t, page.Categories, 2)
	assert.Equal(t, "health", page.Categories[0].Name)
	assert.Equal(t, "personal", page.Categories[1].Name)
}
