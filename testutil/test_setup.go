// Package testutil はテスト用のDB・ルーター・ユーザー作成の補助を提供します。
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"go-task-manager/backend/internal/config"
	"go-task-manager/backend/internal/database"
	"go-task-manager/backend/internal/models"
	"go-task-manager/backend/internal/repositories"
	"go-task-manager/backend/internal/routes"
	"go-task-manager/backend/internal/services"
	"go-task-manager/backend/pkg/translator"
)

const TestJWTSecret = "test-secret"

// TestConfig はテスト用の設定を返します。
func TestConfig() *config.Config {
	return &config.Config{
		AppEnv:     "test",
		AppName:    "go-task-manager",
		AppVersion: "test",
		DB:         config.DBConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"},
		JWT: config.JWTConfig{
			Secret:   TestJWTSecret,
			Issuer:   "go-task-manager",
			Audience: "go-task-manager-clients",
			Expiry:   time.Hour,
		},
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}
}

// NewTestDB はスキーマ適用済みのインメモリSQLiteを返します。
// 接続ごとに別DBになるため、接続は1本に固定されます。
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Connect(TestConfig().DB)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

// SetupTestRouter はインメモリDBを使うルーターをセットアップします。
func SetupTestRouter(t *testing.T) (*sqlx.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{})

	db := NewTestDB(t)
	router := routes.SetupRouter(TestConfig(), db, zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel)))
	return db, router
}

// CreateTestUser はユーザーとロールを直接DBに作成します。
func CreateTestUser(t *testing.T, db *sqlx.DB, username, email, password string, role models.Role) *models.User {
	t.Helper()

	hashedPassword, err := services.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Roles:        []models.Role{role},
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	repo := repositories.NewUserRepository(db)
	require.NoError(t, repo.Add(context.Background(), user))
	require.NoError(t, repo.AddRole(context.Background(), user.ID, role))
	return user
}

// CreateTestCategory はカテゴリを直接DBに作成します。
func CreateTestCategory(t *testing.T, db *sqlx.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{ID: uuid.New(), Name: name, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, repositories.NewCategoryRepository(db).Add(context.Background(), category))
	return category
}

// CreateTestTask はタスクを直接DBに作成します。createdAt を指定すると並び順を制御できます。
func CreateTestTask(t *testing.T, db *sqlx.DB, ownerID uuid.UUID, title string, createdAt time.Time, opts ...func(*models.Task)) *models.Task {
	t.Helper()

	task := &models.Task{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: createdAt.UTC(),
		UserID:    ownerID,
		Priority:  models.PriorityMedium,
	}
	for _, opt := range opts {
		opt(task)
	}
	require.NoError(t, repositories.NewTaskRepository(db).Add(context.Background(), task))
	return task
}

// DoJSON はJSONリクエストを送り、レスポンスを返します。
func DoJSON(t *testing.T, router *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

// DecodeEnvelope はエンベロープの data を out にデコードします。
func DecodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder, out any) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env), resp.Body.String())
	if out != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

// Envelope はレスポンスのデコード用です。
type Envelope struct {
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
}

// LoginAndGetToken はログインしてトークンを取得します。
func LoginAndGetToken(t *testing.T, router *gin.Engine, username, password string) (string, error) {
	t.Helper()

	resp := DoJSON(t, router, http.MethodPost, "/api/users/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if resp.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", resp.Code, resp.Body.String())
	}

	var token models.TokenResponse
	DecodeEnvelope(t, resp, &token)
	if token.Token == "" {
		return "", errors.New("token not found in login response")
	}
	return token.Token, nil
}
