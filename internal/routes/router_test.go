package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-task-manager/backend/internal/models"
	"go-task-manager/backend/testutil"
)

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	_, router := testutil.SetupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := serve(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	_, router := testutil.SetupTestRouter(t)

	w := testutil.DoJSON(t, router, http.MethodPost, "/api/users/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
		"role":     "Owner",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var registered models.TokenResponse
	testutil.DecodeEnvelope(t, w, &registered)
	assert.NotEmpty(t, registered.Token)

	token, err := testutil.LoginAndGetToken(t, router, "alice@example.com", "password123")
	require.NoError(t, err)

	w = testutil.DoJSON(t, router, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.ProfileResponse
	testutil.DecodeEnvelope(t, w, &profile)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, models.RoleOwner, profile.Role)

	w = testutil.DoJSON(t, router, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	_, err = testutil.LoginAndGetToken(t, router, "alice", "wrong-password")
	assert.Error(t, err)
}

func TestTaskLifecycle(t *testing.T) {
	db, router := testutil.SetupTestRouter(t)
	testutil.CreateTestUser(t, db, "owner", "owner@example.com", "password123", models.RoleOwner)
	work := testutil.CreateTestCategory(t, db, "work")
	token, err := testutil.LoginAndGetToken(t, router, "owner", "password123")
	require.NoError(t, err)

	due := time.Date(2030, 1, 15, 9, 0, 0, 0, time.UTC)
	w := testutil.DoJSON(t, router, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":       "write report",
		"description": "quarterly numbers",
		"dueDate":     due,
		"categoryId":  work.ID,
		"priority":    2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created models.TaskResponse
	env := testutil.DecodeEnvelope(t, w, &created)
	assert.True(t, env.Success)
	assert.Equal(t, models.PriorityHigh, created.Priority)
	require.NotNil(t, created.Category)
	assert.Equal(t, "work", *created.Category)

	path := "/api/tasks/" + created.ID.String()

	w = testutil.DoJSON(t, router, http.MethodPut, path, token, map[string]any{"title": "   ", "description": ""})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.TaskResponse
	testutil.DecodeEnvelope(t, w, &updated)
	assert.Equal(t, "write report", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Empty(t, *updated.Description)

	w = testutil.DoJSON(t, router, http.MethodPatch, path+"/complete", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var completion models.TaskCompletion
	testutil.DecodeEnvelope(t, w, &completion)
	assert.True(t, completion.IsCompleted)

	w = testutil.DoJSON(t, router, http.MethodGet, "/api/tasks?completed=true&priority=High&search=REPORT", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page models.TaskPage
	testutil.DecodeEnvelope(t, w, &page)
	assert.Equal(t, 1, page.TotalCount)
	require.Len(t, page.Tasks, 1)
	assert.Equal(t, created.ID, page.Tasks[0].ID)

	w = testutil.DoJSON(t, router, http.MethodDelete, "/api/categories/"+work.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutil.DoJSON(t, router, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detached models.TaskResponse
	testutil.DecodeEnvelope(t, w, &detached)
	assert.Nil(t, detached.CategoryID)

	w = testutil.DoJSON(t, router, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutil.DoJSON(t, router, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTasksAreIsolatedBetweenUsers(t *testing.T) {
	db, router := testutil.SetupTestRouter(t)
	alice := testutil.CreateTestUser(t, db, "alice", "alice@example.com", "password123", models.RoleOwner)
	testutil.CreateTestUser(t, db, "bob", "bob@example.com", "password123", models.RoleOwner)
	task := testutil.CreateTestTask(t, db, alice.ID, "alice only", time.Now())

	bobToken, err := testutil.LoginAndGetToken(t, router, "bob", "password123")
	require.NoError(t, err)

	w := testutil.DoJSON(t, router, http.MethodGet, "/api/tasks", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page models.TaskPage
	testutil.DecodeEnvelope(t, w, &page)
	assert.Zero(t, page.TotalCount)
	assert.Empty(t, page.Tasks)

	path := "/api/tasks/" + task.ID.String()
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w = testutil.DoJSON(t, router, method, path, bobToken, map[string]string{"title": "mine now"})
		assert.Equal(t, http.StatusNotFound, w.Code, method)
	}
	w = testutil.DoJSON(t, router, http.MethodPatch, path+"/complete", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryNameConflictOverHTTP(t *testing.T) {
	db, router := testutil.SetupTestRouter(t)
	testutil.CreateTestUser(t, db, "owner", "owner@example.com", "password123", models.RoleOwner)
	testutil.CreateTestCategory(t, db, "work")
	token, err := testutil.LoginAndGetToken(t, router, "owner", "password123")
	require.NoError(t, err)

	w := testutil.DoJSON(t, router, http.MethodPost, "/api/categories", token, map[string]string{"name": "work"})
	env := testutil.DecodeEnvelope(t, w, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A category with this name already exists.", env.Message)

	w = testutil.DoJSON(t, router, http.MethodGet, "/api/categories?search=wor", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page models.CategoryPage
	testutil.DecodeEnvelope(t, w, &page)
	assert.Equal(t, 1, page.TotalCount)
}
