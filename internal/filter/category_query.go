package filter

import "strings"

const CategoryOrder = "c.name ASC"

// CategoryQuery はカテゴリ一覧の条件です。
type CategoryQuery struct {
	Search   string
	Page     int
	PageSize int
}

func (q CategoryQuery) Normalize() CategoryQuery {
	q.Page, q.PageSize = normalizePage(q.Page, q.PageSize)
	return q
}

// Where は条件がなければ空文字を返します。
func (q CategoryQuery) Where() (string, []any) {
	if strings.TrimSpace(q.Search) == "" {
		return "", nil
	}
	return "c.name LIKE ? ESCAPE '!'", []any{ContainsPattern(q.Search)}
}

func (q CategoryQuery) Limit() int {
	return q.PageSize
}

func (q CategoryQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}
