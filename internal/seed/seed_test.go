package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"go-task-manager/backend/internal/filter"
	"go-task-manager/backend/internal/models"
	"go-task-manager/backend/internal/repositories"
	"go-task-manager/backend/internal/seed"
	"go-task-manager/backend/internal/services"
	"go-task-manager/backend/testutil"
)

func TestRun_IsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	uow := repositories.NewUnitOfWork(db)
	ctx := context.Background()
	opts := seed.Options{AdminEmail: "admin@example.com", AdminPassword: "Admin@123"}

	require.NoError(t, seed.Run(ctx, uow, opts, zaptest.NewLogger(t)))
	require.NoError(t, seed.Run(ctx, uow, opts, zaptest.NewLogger(t)))

	users, err := uow.Users().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, users)

	categories, err := uow.Categories().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, categories)

	tasks, err := uow.Tasks().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, tasks)
}

func TestRun_AdminCanLogIn(t *testing.T) {
	db := testutil.NewTestDB(t)
	uow := repositories.NewUnitOfWork(db)
	ctx := context.Background()

	require.NoError(t, seed.Run(ctx, uow, seed.Options{AdminEmail: "admin@example.com", AdminPassword: "Admin@123"}, zaptest.NewLogger(t)))

	admin, err := uow.Users().FindByLogin(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, admin.HasRole(models.RoleOwner))
	assert.NoError(t, services.VerifyPassword(admin.PasswordHash, "Admin@123"))

	adminTasks, total, err := uow.Tasks().Query(ctx, filter.TaskQuery{OwnerID: admin.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	// 最後に作成したタスクが先頭
	assert.Equal(t, "morning run", adminTasks[0].Title)

	guest, err := uow.Users().FindByLogin(ctx, "GuestUser")
	require.NoError(t, err)
	assert.True(t, guest.HasRole(models.RoleGuest))
}

func TestRun_LogsUserCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	uow := repositories.NewUnitOfWork(db)
	ctx := context.Background()
	core, logs := observer.New(zap.InfoLevel)

	require.NoError(t, seed.Run(ctx, uow, seed.Options{AdminEmail: "admin@example.com", AdminPassword: "Admin@123"}, zap.New(core)))

	finished := logs.FilterMessage("seed finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, int64(2), finished[0].ContextMap()["users"])
}
