package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-task-manager/backend/internal/models"
	"go-task-manager/backend/internal/response"
	"go-task-manager/backend/pkg/translator"
)

// ミドルウェアがgin.Contextに設定するキー
const (
	ContextKeyUserID = "user_id"
	ContextKeyRoles  = "user_roles"
	ContextKeyLang   = "lang"
)

// GetLang はリクエストの言語を返します。未設定なら英語です。
func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(ContextKeyLang); exists {
		if s, ok := lang.(string); ok && s != "" {
			return s
		}
	}
	return translator.LanguageEn
}

// Respond はエンベロープのメッセージを翻訳し、エンベロープのステータスで書き出します。
func Respond(c *gin.Context, env response.Envelope) {
	c.JSON(env.Status(), env.WithMessage(translator.Localize(GetLang(c), env.Message)))
}

// Abort は Respond した上で後続のハンドラーを止めます。
func Abort(c *gin.Context, env response.Envelope) {
	Respond(c, env)
	c.Abort()
}

// currentUserID は認証ミドルウェアが設定したユーザーIDを取り出します。
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		Abort(c, response.Unauthorized(response.MsgAuthHeaderRequired))
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		Abort(c, response.InternalError(response.MsgInternalError))
		return uuid.Nil, false
	}
	return userID, true
}

// CurrentRoles は認証ミドルウェアが設定したロールを返します。
func CurrentRoles(c *gin.Context) []models.Role {
	if value, exists := c.Get(ContextKeyRoles); exists {
		if roles, ok := value.([]models.Role); ok {
			return roles
		}
	}
	return nil
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Respond(c, response.BadRequest(response.MsgInvalidID))
		return uuid.Nil, false
	}
	return id, true
}
