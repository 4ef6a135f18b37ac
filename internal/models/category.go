package models

import (
	"time"

	"github.com/google/uuid"
)

// Category はタスクの分類です。名前は一意です。
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type CategoryListQuery struct {
	Search   string `form:"search"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"pageSize,default=10"`
}

type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type CategoryPage struct {
	TotalCount int                `json:"totalCount"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	Categories []CategoryResponse `json:"categories"`
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}
