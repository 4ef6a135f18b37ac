package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-task-manager/backend/internal/filter"
	"go-task-manager/backend/internal/models"
	"go-task-manager/backend/internal/repositories"
	"go-task-manager/backend/internal/response"
)

// CategoryService はカテゴリ関連のビジネスロジックを扱います。
type CategoryService struct {
	uow    repositories.UnitOfWork
	logger *zap.Logger
}

func NewCategoryService(uow repositories.UnitOfWork, logger *zap.Logger) *CategoryService {
	return &CategoryService{uow: uow, logger: logger.Named("categories")}
}

func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) response.Envelope {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return response.BadRequest(response.MsgCategoryNameBlank)
	}

	category := &models.Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	err := s.uow.Do(ctx, func(tx repositories.UnitOfWork) error {
		taken, err := tx.Categories().ExistsByName(ctx, name, nil)
		if err != nil {
			return err
		}
		if taken {
			return repositories.ErrDuplicate
		}
		return tx.Categories().Add(ctx, category)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return response.BadRequest(response.MsgCategoryNameTaken)
		}
		s.logger.Error("failed to create category", zap.String("name", name), zap.Error(err))
		return response.InternalError(response.MsgFailCreateCategory)
	}

	s.logger.Info("category created", zap.Stringer("category_id", category.ID), zap.String("name", name))
	return response.OK(response.MsgCategoryCreated, category.ToResponse())
}

func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) response.Envelope {
	category, err := s.uow.Categories().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return response.NotFound(response.MsgCategoryNotFound)
		}
		s.logger.Error("failed to get category", zap.Stringer("category_id", id), zap.Error(err))
		return response.InternalError(response.MsgFailGetCategory)
	}
	return response.OK(response.MsgCategoryRetrieved, category.ToResponse())
}

func (s *CategoryService) List(ctx context.Context, q filter.CategoryQuery) response.Envelope {
	q = q.Normalize()

	categories, total, err := s.uow.Categories().Query(ctx, q)
	if err != nil {
		s.logger.Error("failed to list categories", zap.Error(err))
		return response.InternalError(response.MsgFailGetCategories)
	}

	items := make([]models.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, categories[i].ToResponse())
	}
	return response.OK(response.MsgCategoriesRetrieved, models.CategoryPage{
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		Categories: items,
	})
}

// Update はカテゴリ名を変更します。他のカテゴリと同名にはできません。
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req models.CategoryRequest) response.Envelope {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return response.BadRequest(response.MsgCategoryNameBlank)
	}

	var category *models.Category
	err := s.uow.Do(ctx, func(tx repositories.UnitOfWork) error {
		var err error
		category, err = tx.Categories().FindByID(ctx, id)
		if err != nil {
			return err
		}
		taken, err := tx.Categories().ExistsByName(ctx, name, &id)
		if err != nil {
			return err
		}
		if taken {
			return repositories.ErrDuplicate
		}
		category.Name = name
		return tx.Categories().Save(ctx, category)
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrCategoryNotFound):
			return response.NotFound(response.MsgCategoryNotFound)
		case errors.Is(err, repositories.ErrDuplicate):
			return response.BadRequest(response.MsgCategoryNameTaken)
		}
		s.logger.Error("failed to update category", zap.Stringer("category_id", id), zap.Error(err))
		return response.InternalError(response.MsgFailUpdateCategory)
	}

	return response.OK(response.MsgCategoryUpdated, category.ToResponse())
}

// Delete は参照しているタスクを未分類に戻してからカテゴリを削除します。タスクは削除しません。
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) response.Envelope {
	var detached int64
	err := s.uow.Do(ctx, func(tx repositories.UnitOfWork) error {
		category, err := tx.Categories().FindByID(ctx, id)
		if err != nil {
			return err
		}
		detached, err = tx.Categories().DeleteDetachingTasks(ctx, category)
		return err
	})
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return response.NotFound(response.MsgCategoryNotFound)
		}
		s.logger.Error("failed to delete category", zap.Stringer("category_id", id), zap.Error(err))
		return response.InternalError(response.MsgFailDeleteCategory)
	}

	s.logger.Info("category deleted", zap.Stringer("category_id", id), zap.Int64("detached_tasks", detached))
	return response.OK(response.MsgCategoryDeleted, nil)
}
