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

var errCategoryMissing = errors.New("category does not exist")

// TaskService はタスク関連のビジネスロジックを扱います。
// すべての操作はエンベロープを返し、エラーを呼び出し側に返しません。
type TaskService struct {
	uow    repositories.UnitOfWork
	logger *zap.Logger
}

// NewTaskService は新しいTaskServiceを作成します。
func NewTaskService(uow repositories.UnitOfWork, logger *zap.Logger) *TaskService {
	return &TaskService{uow: uow, logger: logger.Named("tasks")}
}

// Create は新しいタスクを作成します。
func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, req models.TaskCreateRequest) response.Envelope {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return response.BadRequest(response.MsgTitleRequired)
	}

	priority := models.PriorityMedium
	if req.Priority != nil {
		priority = *req.Priority
	}

	task := &models.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		UserID:      ownerID,
		CategoryID:  req.CategoryID,
		Priority:    priority,
	}
	if req.DueDate != nil {
		dueDate := req.DueDate.UTC()
		task.DueDate = &dueDate
	}

	var created *models.Task
	err := s.uow.Do(ctx, func(tx repositories.UnitOfWork) error {
		if err := ensureCategory(ctx, tx, req.CategoryID); err != nil {
			return err
		}
		if err := tx.Tasks().Add(ctx, task); err != nil {
			return err
		}
		var err error
		created, err = tx.Tasks().FindByID(ctx, ownerID, task.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, errCategoryMissing) {
			return response.BadRequest(response.MsgCategoryDoesNotExist)
		}
		s.logger.Error("failed to create task", zap.Stringer("owner_id", ownerID), zap.Error(err))
		return response.InternalError(response.MsgFailCreateTask)
	}

	s.logger.Info("task created", zap.Stringer("owner_id", ownerID), zap.Stringer("task_id", created.ID))
	return response.OK(response.MsgTaskCreated, created.ToResponse())
}

// GetByID は所有者のタスクを1件取得します。
func (s *TaskService) GetByID(ctx context.Context, ownerID, taskID uuid.UUID) response.Envelope {
	task, err := s.uow.Tasks().FindByID(ctx, ownerID, taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			s.logger.Warn("task not found", zap.Stringer("owner_id", ownerID), zap.Stringer("task_id", taskID))
			return response.NotFound(response.MsgTaskNotFound)
		}
		s.logger.Error("failed to get task", zap.Stringer("task_id", taskID), zap.Error(err))
		return response.InternalError(response.MsgFailGetTask)
	}
	return response.OK(response.MsgTaskRetrieved, task.ToResponse())
}

// List は絞り込み・ページングしたタスク一覧を返します。
func (s *TaskService) List(ctx context.Context, q filter.TaskQuery) response.Envelope {
	q = q.Normalize()

	tasks, total, err := s.uow.Tasks().Query(ctx, q)
	if err != nil {
		s.logger.Error("failed to list tasks", zap.Stringer("owner_id", q.OwnerID), zap.Error(err))
		return response.InternalError(response.MsgFailGetTasks)
	}

	items := make([]models.TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, tasks[i].ToResponse())
	}

	return response.OK(response.MsgTasksRetrieved, models.TaskPage{
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		Tasks:      items,
	})
}

// Update は部分更新をマージして保存します。
func (s *TaskService) Update(ctx context.Context, ownerID, taskID uuid.UUID, req models.TaskUpdateRequest) response.Envelope {
	var (
		updated *models.Task
		changed []string
	)
	err := s.uow.Do(ctx, func(tx repositories.UnitOfWork) error {
		task, err := tx.Tasks().FindByID(ctx, ownerID, taskID)
		if err != nil {
			return err
		}
		if err := ensureCategory(ctx, tx, req.CategoryID); err != nil {
			return err
		}

		changed = MergeTaskUpdate(task, req)
		if len(changed) > 0 {
			if err := tx.Tasks().Save(ctx, task); err != nil {
				return err
			}
		}

		updated, err = tx.Tasks().FindByID(ctx, ownerID, taskID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTaskNotFound):
			return response.NotFound(response.MsgTaskNotFound)
		case errors.Is(err, errCategoryMissing):
			return response.BadRequest(response.MsgCategoryDoesNotExist)
		}
		s.logger.Error("failed to update task", zap.Stringer("task_id", taskID), zap.Error(err))
		return response.InternalError(response.MsgFailUpdateTask)
	}

	s.logger.Info("task updated",
		zap.Stringer("owner_id", ownerID),
		zap.Stringer("task_id", taskID),
		zap.Strings("changed", changed),
	)
	return response.OK(response.MsgTaskUpdated, updated.ToResponse())
}

// Delete は所有者のタスクを削除します。
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) response.Envelope {
	err := s.uow.Do(ctx, func(tx repositories.UnitOfWork) error {
		task, err := tx.Tasks().FindByID(ctx, ownerID, taskID)
		if err != nil {
			return err
		}
		return tx.Tasks().Delete(ctx, task)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			return response.NotFound(response.MsgTaskNotFound)
		}
		s.logger.Error("failed to delete task", zap.Stringer("task_id", taskID), zap.Error(err))
		return response.InternalError(response.MsgFailDeleteTask)
	}

	s.logger.Info("task deleted", zap.Stringer("owner_id", ownerID), zap.Stringer("task_id", taskID))
	return response.OK(response.MsgTaskDeleted, nil)
}

// ToggleComplete は完了状態を反転し、反転後の状態を返します。
func (s *TaskService) ToggleComplete(ctx context.Context, ownerID, taskID uuid.UUID) response.Envelope {
	var result models.TaskCompletion
	err := s.uow.Do(ctx, func(tx repositories.UnitOfWork) error {
		task, err := tx.Tasks().FindByID(ctx, ownerID, taskID)
		if err != nil {
			return err
		}
		task.IsCompleted = !task.IsCompleted
		if err := tx.Tasks().Save(ctx, task); err != nil {
			return err
		}
		result = models.TaskCompletion{ID: task.ID, IsCompleted: task.IsCompleted}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			return response.NotFound(response.MsgTaskNotFound)
		}
		s.logger.Error("failed to toggle task", zap.Stringer("task_id", taskID), zap.Error(err))
		return response.InternalError(response.MsgFailToggleTask)
	}

	return response.OK(response.MsgTaskStatusUpdated, result)
}

func ensureCategory(ctx context.Context, tx repositories.UnitOfWork, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	exists, err := tx.Categories().Exists(ctx, *categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return errCategoryMissing
	}
	return nil
}
