// Package resource is the generic CRUD layer shared by every module:
// a tenant-scoped document (Base), a Store[T] over the configured backend
// and a Controller[T] that exposes create, list, get, update, delete,
// list-by-relation and stats over HTTP.
package resource

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Base is embedded (inline) by every stored entity.
type Base struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" bson:"_id" json:"id"`
	SchoolID  uuid.UUID `gorm:"column:school_id;type:uuid;not null;index" bson:"school_id" json:"school_id"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index" bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" bson:"updated_at" json:"updated_at"`
}

func (b *Base) Meta() *Base { return b }

// Model is satisfied by *T for every entity T embedding Base.
type Model interface {
	TableName() string
	Meta() *Base
}

var (
	ErrNotFound  = errors.New("resource: not found")
	ErrDuplicate = errors.New("resource: duplicate key")
)

// ValidationError lists offending fields by their JSON name.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func tableOf[T any, PT interface {
	*T
	Model
}]() string {
	var zero T
	return PT(&zero).TableName()
}
