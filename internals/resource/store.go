package resource

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Store is the persistence contract every module goes through.
// All methods are tenant-scoped unless the Query says AllTenants.
type Store[T any] interface {
	Insert(ctx context.Context, m *T) error
	Find(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, q Query) (int64, error)
	Get(ctx context.Context, schoolID, id uuid.UUID) (*T, error)
	Replace(ctx context.Context, m *T) error
	Delete(ctx context.Context, schoolID, id uuid.UUID) error
	DeleteWhere(ctx context.Context, q Query) (int64, error)
	Stats(ctx context.Context, q Query, fields []EnumField) (Stats, error)
}

// Backend is a storage engine. Exists serves same-tenant reference checks.
type Backend interface {
	Name() string
	Exists(ctx context.Context, table string, schoolID, id uuid.UUID) (bool, error)
}

// Relation describes a populated reference: Field is the Go field holding
// the display projection, Table the referenced table and Column the local
// foreign-key column.
type Relation struct {
	Field  string
	Table  string
	Column string
}

// StoreFor builds the Store[T] for backend b, wrapped with enum validation.
func StoreFor[T any, PT interface {
	*T
	Model
}](b Backend, rels ...Relation) Store[T] {
	var s Store[T]
	switch be := b.(type) {
	case *GormBackend:
		s = &gormStore[T, PT]{db: be.DB, rels: rels}
	case *MongoBackend:
		s = newMongoStore[T, PT](be, rels)
	case *MemoryBackend:
		s = &memoryStore[T, PT]{be: be, rels: rels}
	default:
		panic(fmt.Sprintf("resource: unsupported backend %T", b))
	}
	return &validatingStore[T]{next: s}
}

/* ===============================
   Validation at the persistence boundary
=================================*/

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator is shared so custom tags registered once apply everywhere.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateModel converts validator failures into *ValidationError.
func ValidateModel(m any) error {
	err := Validator().Struct(m)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	fields := make(map[string][]string, len(ves))
	for _, fe := range ves {
		name := fe.Field()
		fields[name] = append(fields[name], describe(fe))
	}
	return &ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

type validatingStore[T any] struct {
	next Store[T]
}

func (s *validatingStore[T]) Insert(ctx context.Context, m *T) error {
	if err := ValidateModel(m); err != nil {
		return err
	}
	return s.next.Insert(ctx, m)
}

func (s *validatingStore[T]) Replace(ctx context.Context, m *T) error {
	if err := ValidateModel(m); err != nil {
		return err
	}
	return s.next.Replace(ctx, m)
}

func (s *validatingStore[T]) Find(ctx context.Context, q Query) ([]T, error) {
	return s.next.Find(ctx, q)
}

func (s *validatingStore[T]) Count(ctx context.Context, q Query) (int64, error) {
	return s.next.Count(ctx, q)
}

func (s *validatingStore[T]) Get(ctx context.Context, schoolID, id uuid.UUID) (*T, error) {
	return s.next.Get(ctx, schoolID, id)
}

func (s *validatingStore[T]) Delete(ctx context.Context, schoolID, id uuid.UUID) error {
	return s.next.Delete(ctx, schoolID, id)
}

func (s *validatingStore[T]) DeleteWhere(ctx context.Context, q Query) (int64, error) {
	return s.next.DeleteWhere(ctx, q)
}

func (s *validatingStore[T]) Stats(ctx context.Context, q Query, fields []EnumField) (Stats, error) {
	return s.next.Stats(ctx, q, fields)
}
