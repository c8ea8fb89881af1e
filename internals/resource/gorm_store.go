package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBackend stores documents in PostgreSQL through GORM.
type GormBackend struct {
	DB *gorm.DB
}

func NewGormBackend(db *gorm.DB) *GormBackend { return &GormBackend{DB: db} }

func (b *GormBackend) Name() string { return "postgres" }

func (b *GormBackend) Exists(ctx context.Context, table string, schoolID, id uuid.UUID) (bool, error) {
	var n int64
	err := b.DB.WithContext(ctx).
		Table(table).
		Where("id = ? AND school_id = ?", id, schoolID).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

type gormStore[T any, PT interface {
	*T
	Model
}] struct {
	db   *gorm.DB
	rels []Relation
}

func (s *gormStore[T, PT]) scoped(ctx context.Context, q Query) *gorm.DB {
	tx := s.db.WithContext(ctx).Model(new(T))
	if !q.AllTenants {
		tx = tx.Where("school_id = ?", q.SchoolID)
	}
	for _, k := range sortedKeys(q.Where) {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: k}, Value: q.Where[k]})
	}
	for _, r := range q.Ranges {
		if r.From != nil {
			tx = tx.Where(clause.Gte{Column: clause.Column{Name: r.Column}, Value: *r.From})
		}
		if r.To != nil {
			tx = tx.Where(clause.Lte{Column: clause.Column{Name: r.Column}, Value: *r.To})
		}
	}
	return tx
}

func (s *gormStore[T, PT]) preload(tx *gorm.DB) *gorm.DB {
	for _, r := range s.rels {
		tx = tx.Preload(r.Field)
	}
	return tx
}

func (s *gormStore[T, PT]) Insert(ctx context.Context, m *T) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
	return mapGormErr(err)
}

// findTx is scoped plus sort (id as tie-break), paging and preloads.
func (s *gormStore[T, PT]) findTx(ctx context.Context, q Query) *gorm.DB {
	srt := q.sortOrDefault()
	tx := s.preload(s.scoped(ctx, q)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: srt.Column}, Desc: srt.Desc}).
		Order("id")
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx
}

func (s *gormStore[T, PT]) Find(ctx context.Context, q Query) ([]T, error) {
	out := make([]T, 0)
	if err := s.findTx(ctx, q).Find(&out).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return out, nil
}

func (s *gormStore[T, PT]) Count(ctx context.Context, q Query) (int64, error) {
	var n int64
	err := s.scoped(ctx, q).Count(&n).Error
	return n, mapGormErr(err)
}

func (s *gormStore[T, PT]) Get(ctx context.Context, schoolID, id uuid.UUID) (*T, error) {
	var m T
	err := s.preload(s.db.WithContext(ctx)).
		Where("id = ? AND school_id = ?", id, schoolID).
		Take(&m).Error
	if err != nil {
		return nil, mapGormErr(err)
	}
	return &m, nil
}

// Replace writes every column of m (zero values included).
func (s *gormStore[T, PT]) Replace(ctx context.Context, m *T) error {
	meta := PT(m).Meta()
	res := s.db.WithContext(ctx).
		Model(m).
		Where("school_id = ?", meta.SchoolID).
		Select("*").
		Omit(clause.Associations, "id", "school_id", "created_at").
		Updates(m)
	if res.Error != nil {
		return mapGormErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore[T, PT]) Delete(ctx context.Context, schoolID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND school_id = ?", id, schoolID).
		Delete(new(T))
	if res.Error != nil {
		return mapGormErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore[T, PT]) DeleteWhere(ctx context.Context, q Query) (int64, error) {
	res := s.scoped(ctx, q).Delete(new(T))
	return res.RowsAffected, mapGormErr(res.Error)
}

// Stats runs one GROUP BY per field; declared values missing from the
// result stay at zero.
func (s *gormStore[T, PT]) Stats(ctx context.Context, q Query, fields []EnumField) (Stats, error) {
	st := newStats(fields)
	if err := s.scoped(ctx, q).Count(&st.Total).Error; err != nil {
		return st, mapGormErr(err)
	}
	for _, f := range fields {
		var rows []struct {
			Value *string
			N     int64
		}
		err := groupCount(s.scoped(ctx, q), f).Scan(&rows).Error
		if err != nil {
			return st, fmt.Errorf("stats %s: %w", f.Column, mapGormErr(err))
		}
		for _, r := range rows {
			if r.Value != nil {
				st.add(f.Name, *r.Value, r.N)
			}
		}
	}
	return st, nil
}

// groupCount selects (value, n) per distinct value of f.Column.
func groupCount(tx *gorm.DB, f EnumField) *gorm.DB {
	return tx.Select("? AS value, COUNT(*) AS n", clause.Column{Name: f.Column}).Group(f.Column)
}

func mapGormErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
