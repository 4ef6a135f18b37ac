package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-task-manager/backend/internal/filter"
	"go-task-manager/backend/internal/models"
	"go-task-manager/backend/internal/response"
)

// TaskService はハンドラーから見たタスク操作です。
type TaskService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req models.TaskCreateRequest) response.Envelope
	GetByID(ctx context.Context, ownerID, taskID uuid.UUID) response.Envelope
	List(ctx context.Context, q filter.TaskQuery) response.Envelope
	Update(ctx context.Context, ownerID, taskID uuid.UUID, req models.TaskUpdateRequest) response.Envelope
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) response.Envelope
	ToggleComplete(ctx context.Context, ownerID, taskID uuid.UUID) response.Envelope
}

// TaskHandler はタスク関連のハンドラーを管理します。
type TaskHandler struct {
	taskService TaskService
}

// NewTaskHandler は新しいTaskHandlerを作成します。
func NewTaskHandler(taskService TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskHandler は新しいタスクを作成します。
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, response.BadRequest(response.MsgInvalidPayload))
		return
	}

	Respond(c, h.taskService.Create(c.Request.Context(), userID, req))
}

// GetTasksHandler はログインユーザーのタスク一覧を取得します。
func (h *TaskHandler) GetTasksHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var params models.TaskListQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		Respond(c, response.BadRequest(response.MsgInvalidQuery))
		return
	}
	q, err := buildTaskQuery(userID, params)
	if err != nil {
		Respond(c, response.BadRequest(response.MsgInvalidQuery))
		return
	}

	Respond(c, h.taskService.List(c.Request.Context(), q))
}

// GetTaskByIDHandler は指定IDのタスクを取得します。
func (h *TaskHandler) GetTaskByIDHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	Respond(c, h.taskService.GetByID(c.Request.Context(), userID, id))
}

// UpdateTaskHandler はタスクを部分更新します。
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, response.BadRequest(response.MsgInvalidPayload))
		return
	}

	Respond(c, h.taskService.Update(c.Request.Context(), userID, id, req))
}

// DeleteTaskHandler はタスクを削除します。
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	Respond(c, h.taskService.Delete(c.Request.Context(), userID, id))
}

// ToggleCompleteHandler は完了状態を反転します。
func (h *TaskHandler) ToggleCompleteHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	Respond(c, h.taskService.ToggleComplete(c.Request.Context(), userID, id))
}

// buildTaskQuery はクエリ文字列を型付きの条件に変換します。空の値は条件なしとして扱います。
func buildTaskQuery(ownerID uuid.UUID, params models.TaskListQuery) (filter.TaskQuery, error) {
	q := filter.TaskQuery{
		OwnerID:  ownerID,
		Search:   params.Search,
		Page:     params.Page,
		PageSize: params.PageSize,
	}

	if s := strings.TrimSpace(params.Completed); s != "" {
		completed, err := strconv.ParseBool(s)
		if err != nil {
			return q, err
		}
		q.Completed = &completed
	}
	if s := strings.TrimSpace(params.Priority); s != "" {
		priority, err := models.ParsePriority(s)
		if err != nil {
			return q, err
		}
		q.Priority = &priority
	}
	if s := strings.TrimSpace(params.CategoryID); s != "" {
		categoryID, err := uuid.Parse(s)
		if err != nil {
			return q, err
		}
		q.CategoryID = &categoryID
	}

	return q, nil
}
