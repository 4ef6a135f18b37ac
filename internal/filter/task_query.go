// Package filter はタスク一覧とカテゴリ一覧の絞り込み・並び順・ページングを組み立てます。
package filter

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"go-task-manager/backend/internal/models"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10

	// TaskOrder は固定の並び順です。同時刻の作成でもページが安定するようidで決着させます。
	TaskOrder = "t.created_at DESC, t.id DESC"

	likeEscape = '!'
)

// TaskQuery はタスク一覧の条件です。ポインタがnilの条件は適用しません。
type TaskQuery struct {
	OwnerID    uuid.UUID
	Completed  *bool
	Priority   *models.Priority
	CategoryID *uuid.UUID
	Search     string
	Page       int
	PageSize   int
}

// Normalize はページ番号とページサイズを1以上に丸めたコピーを返します。
// ページ番号はOffsetがintに収まる範囲に切り詰めます。
func (q TaskQuery) Normalize() TaskQuery {
	q.Page, q.PageSize = normalizePage(q.Page, q.PageSize)
	return q
}

// Where はエイリアス "t" のtasksテーブルに対するWHERE句（キーワードなし）と引数を返します。
// 所有者条件は常に含まれ、その他の条件はANDで連結されます。
func (q TaskQuery) Where() (string, []any) {
	clauses := []string{"t.user_id = ?"}
	args := []any{q.OwnerID}

	if q.Completed != nil {
		clauses = append(clauses, "t.is_completed = ?")
		args = append(args, *q.Completed)
	}
	if q.Priority != nil {
		clauses = append(clauses, "t.priority = ?")
		args = append(args, int(*q.Priority))
	}
	if q.CategoryID != nil {
		clauses = append(clauses, "t.category_id = ?")
		args = append(args, *q.CategoryID)
	}
	// 前後の空白も検索語の一部として扱い、空白だけの場合は条件を付けません
	if strings.TrimSpace(q.Search) != "" {
		pattern := ContainsPattern(q.Search)
		clauses = append(clauses, "(t.title LIKE ? ESCAPE '!' OR t.description LIKE ? ESCAPE '!')")
		args = append(args, pattern, pattern)
	}

	return strings.Join(clauses, " AND "), args
}

// Limit と Offset は正規化済みのクエリに対して呼び出します。
func (q TaskQuery) Limit() int {
	return q.PageSize
}

func (q TaskQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// ContainsPattern は部分一致用のLIKEパターンを返します。ワイルドカードはエスケープされます。
func ContainsPattern(term string) string {
	var b strings.Builder
	b.Grow(len(term) + 2)
	b.WriteByte('%')
	for _, r := range term {
		switch r {
		case likeEscape, '%', '_':
			b.WriteRune(likeEscape)
		}
		b.WriteRune(r)
	}
	b.WriteByte('%')
	return b.String()
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if page > math.MaxInt/pageSize {
		page = math.MaxInt / pageSize
	}
	return page, pageSize
}
