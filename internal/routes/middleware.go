package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-task-manager/backend/internal/handlers"
	"go-task-manager/backend/internal/models"
	"go-task-manager/backend/internal/response"
	"go-task-manager/backend/internal/services"
	"go-task-manager/backend/pkg/translator"
)

const bearerPrefix = "Bearer "

// TokenValidator はアクセストークンを検証します。
type TokenValidator interface {
	ValidateToken(tokenString string) (*services.Claims, error)
}

// AuthMiddleware はJWTトークンを検証し、ユーザー情報をコンテキストに設定するミドルウェアです。
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			handlers.Abort(c, response.Unauthorized(response.MsgAuthHeaderRequired))
			return
		}
		if !strings.HasPrefix(tokenString, bearerPrefix) {
			handlers.Abort(c, response.Unauthorized(response.MsgInvalidTokenFormat))
			return
		}
		tokenString = strings.TrimSpace(tokenString[len(bearerPrefix):])

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			handlers.Abort(c, response.Unauthorized(response.MsgInvalidToken))
			return
		}

		c.Set(handlers.ContextKeyUserID, claims.UserID)
		c.Set(handlers.ContextKeyRoles, claims.Roles)
		c.Next()
	}
}

// RequireRole はいずれかのロールを持たないリクエストを403で止めます。
// AuthMiddleware の後に置くこと。
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, have := range handlers.CurrentRoles(c) {
			for _, want := range roles {
				if have == want {
					c.Next()
					return
				}
			}
		}
		handlers.Abort(c, response.Forbidden(response.MsgForbidden))
	}
}

// LanguageMiddleware は Accept-Language ヘッダーから言語を設定します。
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")
		if lang == "" {
			lang = translator.LanguageEn
		}
		c.Set(handlers.ContextKeyLang, lang)
		c.Next()
	}
}

// GinZapMiddleware はリクエストごとにアクセスログを出力します。
func GinZapMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("http request", fields...)
			return
		}
		logger.Info("http request", fields...)
	}
}
