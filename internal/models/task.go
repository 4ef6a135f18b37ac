// Package modelsはタスク、カテゴリ、ユーザーと、そのリクエスト/レスポンスDTOを定義します。
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority はタスクの優先度です。DBには序数で保存されます。
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

var priorityNames = [...]string{"Low", "Medium", "High"}

func (p Priority) String() string {
	if !p.Valid() {
		return "Priority(" + strconv.Itoa(int(p)) + ")"
	}
	return priorityNames[p]
}

// Valid は定義済みの優先度かどうかを返します。
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// ParsePriority は名前（大文字小文字を区別しない）または序数から優先度を解釈します。
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	for i, name := range priorityNames {
		if strings.EqualFold(s, name) {
			return Priority(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Priority(n).Valid() {
		return Priority(n), nil
	}
	return 0, fmt.Errorf("invalid priority %q", s)
}

// MarshalJSON は優先度を名前で出力します。
func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON は "High" のような名前と 2 のような序数の両方を受け付けます。
func (p *Priority) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}
	parsed, err := ParsePriority(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Task は所有者にひもづくタスクです。
type Task struct {
	ID          uuid.UUID
	Title       string
	Description *string
	IsCompleted bool
	CreatedAt   time.Time
	DueDate     *time.Time
	UserID      uuid.UUID
	CategoryID  *uuid.UUID
	Priority    Priority

	// 読み取り時のみ、categoriesとのJOINで埋まる
	CategoryName *string
}

// TaskCreateRequest はタスク作成のリクエストです。
type TaskCreateRequest struct {
	Title       string     `json:"title" binding:"required,max=256"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	DueDate     *time.Time `json:"dueDate"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	Priority    *Priority  `json:"priority"` // 未指定ならMedium
}

// TaskUpdateRequest は部分更新のリクエストです。nilのフィールドは変更しません。
type TaskUpdateRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=256"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	DueDate     *time.Time `json:"dueDate"`
	IsCompleted *bool      `json:"isCompleted"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	Priority    *Priority  `json:"priority"`
}

// TaskListQuery は一覧取得のクエリパラメータです。型変換はハンドラーで行います。
type TaskListQuery struct {
	Completed  string `form:"completed"`
	Priority   string `form:"priority"`
	CategoryID string `form:"categoryId"`
	Search     string `form:"search"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"pageSize,default=10"`
}

// TaskResponse はクライアントに返すタスクです。
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    Priority   `json:"priority"`
	Category    *string    `json:"category"`
	CategoryID  *uuid.UUID `json:"categoryId"`
}

// TaskPage はページングされたタスク一覧です。
type TaskPage struct {
	TotalCount int            `json:"totalCount"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	Tasks      []TaskResponse `json:"tasks"`
}

// TaskCompletion は完了トグル後の状態です。
type TaskCompletion struct {
	ID          uuid.UUID `json:"id"`
	IsCompleted bool      `json:"isCompleted"`
}

// ToResponse はエンティティをレスポンスDTOに変換します。
func (t *Task) ToResponse() TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Category:    t.CategoryName,
		CategoryID:  t.CategoryID,
	}
}
