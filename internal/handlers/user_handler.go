package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-task-manager/backend/internal/models"
	"go-task-manager/backend/internal/response"
)

type UserService interface {
	Register(ctx context.Context, req models.UserRegisterRequest) response.Envelope
	Login(ctx context.Context, req models.UserLoginRequest) response.Envelope
	Profile(ctx context.Context, userID uuid.UUID) response.Envelope
	GetByID(ctx context.Context, id uuid.UUID) response.Envelope
	List(ctx context.Context) response.Envelope
}

// UserHandler はユーザー関連のハンドラーを管理します。
type UserHandler struct {
	userService UserService
}

// NewUserHandler は新しいUserHandlerを作成します。
func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterHandler はユーザー登録を処理します。
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req models.UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, response.BadRequest(response.MsgInvalidPayload))
		return
	}
	Respond(c, h.userService.Register(c.Request.Context(), req))
}

// LoginHandler はユーザーログインを処理します。
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, response.BadRequest(response.MsgInvalidPayload))
		return
	}
	Respond(c, h.userService.Login(c.Request.Context(), req))
}

// ProfileHandler はログイン中のユーザー情報を返します。
func (h *UserHandler) ProfileHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	Respond(c, h.userService.Profile(c.Request.Context(), userID))
}

func (h *UserHandler) GetUsersHandler(c *gin.Context) {
	Respond(c, h.userService.List(c.Request.Context()))
}

func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	Respond(c, h.userService.GetByID(c.Request.Context(), id))
}
