package services

import (
	"strings"

	"go-task-manager/backend/internal/models"
)

// MergeTaskUpdate は部分更新をタスクに適用し、変更したフィールド名を返します。
// タイトルは空白のみなら無視し、説明は空文字でも適用します。永続化は呼び出し側で行います。
func MergeTaskUpdate(task *models.Task, upd models.TaskUpdateRequest) []string {
	var changed []string

	if upd.Title != nil && strings.TrimSpace(*upd.Title) != "" {
		task.Title = *upd.Title
		changed = append(changed, "title")
	}
	if upd.Description != nil {
		description := *upd.Description
		task.Description = &description
		changed = append(changed, "description")
	}
	if upd.DueDate != nil {
		dueDate := upd.DueDate.UTC()
		task.DueDate = &dueDate
		changed = append(changed, "dueDate")
	}
	if upd.IsCompleted != nil {
		task.IsCompleted = *upd.IsCompleted
		changed = append(changed, "isCompleted")
	}
	if upd.CategoryID != nil {
		categoryID := *upd.CategoryID
		task.CategoryID = &categoryID
		changed = append(changed, "categoryId")
	}
	if upd.Priority != nil {
		task.Priority = *upd.Priority
		changed = append(changed, "priority")
	}

	return changed
}
