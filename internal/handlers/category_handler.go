package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-task-manager/backend/internal/filter"
	"go-task-manager/backend/internal/models"
	"go-task-manager/backend/internal/response"
)

type CategoryService interface {
	Create(ctx context.Context, req models.CategoryRequest) response.Envelope
	GetByID(ctx context.Context, id uuid.UUID) response.Envelope
	List(ctx context.Context, q filter.CategoryQuery) response.Envelope
	Update(ctx context.Context, id uuid.UUID, req models.CategoryRequest) response.Envelope
	Delete(ctx context.Context, id uuid.UUID) response.Envelope
}

// CategoryHandler はカテゴリ関連のハンドラーを管理します。
type CategoryHandler struct {
	categoryService CategoryService
}

func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) CreateCategoryHandler(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, response.BadRequest(response.MsgInvalidPayload))
		return
	}
	Respond(c, h.categoryService.Create(c.Request.Context(), req))
}

func (h *CategoryHandler) GetCategoriesHandler(c *gin.Context) {
	var params models.CategoryListQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		Respond(c, response.BadRequest(response.MsgInvalidQuery))
		return
	}
	Respond(c, h.categoryService.List(c.Request.Context(), filter.CategoryQuery{
		Search:   params.Search,
		Page:     params.Page,
		PageSize: params.PageSize,
	}))
}

func (h *CategoryHandler) GetCategoryByIDHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	Respond(c, h.categoryService.GetByID(c.Request.Context(), id))
}

func (h *CategoryHandler) UpdateCategoryHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, response.BadRequest(response.MsgInvalidPayload))
		return
	}
	Respond(c, h.categoryService.Update(c.Request.Context(), id, req))
}

func (h *CategoryHandler) DeleteCategoryHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	Respond(c, h.categoryService.Delete(c.Request.Context(), id))
}
