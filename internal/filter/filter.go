// Package filter 组合待办查询的过滤条件并编码为查询串。
// Package filter composes todo query predicates and encodes them as a query string.
package filter

import (
	"net/url"
	"strconv"
)

// Set 客户端侧的过滤条件；空串表示无约束。
// Completed 保持字符串语义（"true"/"false"/""）以对齐查询参数。
// Set is the client-side predicate bundle; empty string means no constraint.
// Completed stays a string ("true"/"false"/"") to match query-string semantics.
type Set struct {
	Search    string
	Category  string
	Priority  string
	Completed string
}

// Patch 部分更新；nil 字段保持原值，空串视为清除。
// Patch is a partial update; nil fields keep the old value, empty string clears.
type Patch struct {
	Search    *string
	Category  *string
	Priority  *string
	Completed *string
}

// Compose 合并 patch 生成新的过滤条件
// Compose merges a patch into the current set and returns the result
func (s Set) Compose(p Patch) Set {
	out := s
	if p.Search != nil {
		out.Search = *p.Search
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Completed != nil {
		out.Completed = normalizeCompleted(*p.Completed)
	}
	return out
}

// Active 是否存在任一约束 / Active reports whether any constraint is set
func (s Set) Active() bool {
	return s.Search != "" || s.Category != "" || s.Priority != "" || s.Completed != ""
}

// Encode 生成规范查询串：仅包含非空字段，顺序固定为
// search, category, priority, completed, page, limit。page/limit 恒出现。
// Encode builds the canonical query string: only non-empty fields, in the
// fixed order search, category, priority, completed, page, limit.
// page and limit are always included.
func (s Set) Encode(page, limit int) string {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	pairs := []struct{ key, value string }{
		{"search", s.Search},
		{"category", s.Category},
		{"priority", s.Priority},
		{"completed", s.Completed},
		{"page", strconv.Itoa(page)},
		{"limit", strconv.Itoa(limit)},
	}

	// url.Values 会按 key 排序，这里手工拼接以保持插入顺序
	// url.Values sorts keys; build by hand to preserve insertion order
	out := ""
	for _, pair := range pairs {
		if pair.value == "" {
			continue
		}
		if out != "" {
			out += "&"
		}
		out += pair.key + "=" + url.QueryEscape(pair.value)
	}
	return out
}

func normalizeCompleted(v string) string {
	switch v {
	case "true", "false":
		return v
	}
	return ""
}
