package resource

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// MemoryBackend keeps documents in process memory. It backs the test
// suites and DB_DRIVER=memory demos; nothing survives a restart.
type MemoryBackend struct {
	mu     sync.RWMutex
	tables map[string]map[uuid.UUID]any // values are *T
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{tables: map[string]map[uuid.UUID]any{}}
}

func (b *MemoryBackend) Name() string { return "memory" }

func (b *MemoryBackend) Exists(_ context.Context, table string, schoolID, id uuid.UUID) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	doc, ok := b.tables[table][id]
	if !ok {
		return false, nil
	}
	m, ok := doc.(interface{ Meta() *Base })
	return ok && m.Meta().SchoolID == schoolID, nil
}

func (b *MemoryBackend) table(name string) map[uuid.UUID]any {
	t, ok := b.tables[name]
	if !ok {
		t = map[uuid.UUID]any{}
		b.tables[name] = t
	}
	return t
}

type memoryStore[T any, PT interface {
	*T
	Model
}] struct {
	be   *MemoryBackend
	rels []Relation
}

func (s *memoryStore[T, PT]) name() string { return tableOf[T, PT]() }

func (s *memoryStore[T, PT]) stripRelations(m *T) {
	v := reflect.ValueOf(m).Elem()
	for _, r := range s.rels {
		if f := v.FieldByName(r.Field); f.IsValid() && f.CanSet() {
			f.Set(reflect.Zero(f.Type()))
		}
	}
}

func (s *memoryStore[T, PT]) matches(m *T, q Query) bool {
	return matchDoc[T, PT](m, q)
}

// matchDoc evaluates q against one document in memory.
func matchDoc[T any, PT interface {
	*T
	Model
}](m *T, q Query) bool {
	if !q.AllTenants && PT(m).Meta().SchoolID != q.SchoolID {
		return false
	}
	v := reflect.ValueOf(m).Elem()
	for col, want := range q.Where {
		got, ok := columnValue(v, col)
		w, wok := normalize(want)
		if !ok || !wok || got != w {
			return false
		}
	}
	for _, r := range q.Ranges {
		t, ok := timeOf(fieldByColumn(v, r.Column))
		if !ok {
			return false
		}
		if r.From != nil && t.Before(*r.From) {
			return false
		}
		if r.To != nil && t.After(*r.To) {
			return false
		}
	}
	return true
}

// populate copies referenced documents into the relation fields through
// their JSON shape, which the display projections share.
func (s *memoryStore[T, PT]) populate(m *T) {
	v := reflect.ValueOf(m).Elem()
	for _, r := range s.rels {
		f := v.FieldByName(r.Field)
		if !f.IsValid() || !f.CanSet() {
			continue
		}
		f.Set(reflect.Zero(f.Type()))
		key, ok := columnValue(v, r.Column)
		if !ok {
			continue
		}
		id, err := uuid.Parse(key)
		if err != nil {
			continue
		}
		doc, ok := s.be.tables[r.Table][id]
		if !ok {
			continue
		}
		raw, err := sonic.Marshal(doc)
		if err != nil {
			continue
		}
		target := reflect.New(f.Type())
		if err := sonic.Unmarshal(raw, target.Interface()); err == nil {
			f.Set(target.Elem())
		}
	}
}

func (s *memoryStore[T, PT]) Insert(_ context.Context, m *T) error {
	s.be.mu.Lock()
	defer s.be.mu.Unlock()
	t := s.be.table(s.name())
	id := PT(m).Meta().ID
	if _, dup := t[id]; dup {
		return ErrDuplicate
	}
	cp := *m
	s.stripRelations(&cp)
	t[id] = &cp
	return nil
}

func (s *memoryStore[T, PT]) selectAll(q Query) []T {
	out := make([]T, 0)
	for _, doc := range s.be.tables[s.name()] {
		m := doc.(*T)
		if s.matches(m, q) {
			out = append(out, *m)
		}
	}
	return out
}

func (s *memoryStore[T, PT]) Find(_ context.Context, q Query) ([]T, error) {
	s.be.mu.RLock()
	defer s.be.mu.RUnlock()

	out := s.selectAll(q)
	srt := q.sortOrDefault()
	sort.SliceStable(out, func(i, j int) bool {
		a := reflect.ValueOf(&out[i]).Elem()
		b := reflect.ValueOf(&out[j]).Elem()
		fa, fb := fieldByColumn(a, srt.Column), fieldByColumn(b, srt.Column)
		if fa.IsValid() && fb.IsValid() {
			if c := compareField(fa, fb); c != 0 {
				if srt.Desc {
					return c > 0
				}
				return c < 0
			}
		}
		return PT(&out[i]).Meta().ID.String() < PT(&out[j]).Meta().ID.String()
	})

	if q.Offset > 0 {
		if q.Offset >= len(out) {
			out = out[:0]
		} else {
			out = out[q.Offset:]
		}
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	for i := range out {
		s.populate(&out[i])
	}
	return out, nil
}

func (s *memoryStore[T, PT]) Count(_ context.Context, q Query) (int64, error) {
	s.be.mu.RLock()
	defer s.be.mu.RUnlock()
	return int64(len(s.selectAll(q))), nil
}

func (s *memoryStore[T, PT]) Get(_ context.Context, schoolID, id uuid.UUID) (*T, error) {
	s.be.mu.RLock()
	defer s.be.mu.RUnlock()
	doc, ok := s.be.tables[s.name()][id]
	if !ok {
		return nil, ErrNotFound
	}
	m := *doc.(*T)
	if PT(&m).Meta().SchoolID != schoolID {
		return nil, ErrNotFound
	}
	s.populate(&m)
	return &m, nil
}

func (s *memoryStore[T, PT]) Replace(_ context.Context, m *T) error {
	s.be.mu.Lock()
	defer s.be.mu.Unlock()
	meta := PT(m).Meta()
	t := s.be.table(s.name())
	doc, ok := t[meta.ID]
	if !ok || PT(doc.(*T)).Meta().SchoolID != meta.SchoolID {
		return ErrNotFound
	}
	cp := *m
	s.stripRelations(&cp)
	t[meta.ID] = &cp
	return nil
}

func (s *memoryStore[T, PT]) Delete(_ context.Context, schoolID, id uuid.UUID) error {
	s.be.mu.Lock()
	defer s.be.mu.Unlock()
	t := s.be.table(s.name())
	doc, ok := t[id]
	if !ok || PT(doc.(*T)).Meta().SchoolID != schoolID {
		return ErrNotFound
	}
	delete(t, id)
	return nil
}

func (s *memoryStore[T, PT]) DeleteWhere(_ context.Context, q Query) (int64, error) {
	s.be.mu.Lock()
	defer s.be.mu.Unlock()
	t := s.be.table(s.name())
	var n int64
	for id, doc := range t {
		if s.matches(doc.(*T), q) {
			delete(t, id)
			n++
		}
	}
	return n, nil
}

func (s *memoryStore[T, PT]) Stats(_ context.Context, q Query, fields []EnumField) (Stats, error) {
	s.be.mu.RLock()
	defer s.be.mu.RUnlock()
	st := newStats(fields)
	for _, m := range s.selectAll(q) {
		st.Total++
		v := reflect.ValueOf(&m).Elem()
		for _, f := range fields {
			if val, ok := columnValue(v, f.Column); ok {
				st.add(f.Name, val, 1)
			}
		}
	}
	return st, nil
}
