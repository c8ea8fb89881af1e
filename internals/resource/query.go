package resource

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Query is a tenant-scoped selection. AllTenants lifts the school filter
// and is reserved for background jobs, login and webhooks.
type Query struct {
	SchoolID   uuid.UUID
	AllTenants bool
	Where      map[string]any // column → exact value
	Ranges     []Range
	Sort       Sort
	Offset     int
	Limit      int // 0 = no limit
}

// Range bounds a time column; nil ends are open. Both ends are inclusive.
type Range struct {
	Column string
	From   *time.Time
	To     *time.Time
}

type Sort struct {
	Column string
	Desc   bool
}

var DefaultSort = Sort{Column: "created_at", Desc: true}

func (q Query) Eq(column string, value any) Query {
	w := make(map[string]any, len(q.Where)+1)
	for k, v := range q.Where {
		w[k] = v
	}
	w[column] = value
	q.Where = w
	return q
}

func (q Query) sortOrDefault() Sort {
	if q.Sort.Column == "" {
		return DefaultSort
	}
	return q.Sort
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
