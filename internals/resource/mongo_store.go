package resource

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBackend stores one collection per table. The client must be built
// with a registry that encodes uuid.UUID as binary subtype 4.
type MongoBackend struct {
	DB *mongo.Database

	mu      sync.Mutex
	indexed map[string]bool
}

func NewMongoBackend(db *mongo.Database) *MongoBackend {
	return &MongoBackend{DB: db, indexed: map[string]bool{}}
}

func (b *MongoBackend) Name() string { return "mongo" }

func (b *MongoBackend) Exists(ctx context.Context, table string, schoolID, id uuid.UUID) (bool, error) {
	n, err := b.DB.Collection(table).CountDocuments(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "school_id", Value: schoolID}},
		options.Count().SetLimit(1))
	return n > 0, err
}

// ensureIndexes creates the tenant index once per collection.
func (b *MongoBackend) ensureIndexes(table string) {
	b.mu.Lock()
	done := b.indexed[table]
	b.indexed[table] = true
	b.mu.Unlock()
	if done {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := b.DB.Collection(table).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "school_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		log.Printf("[MONGO][INDEX] %s: %v", table, err)
	}
}

type mongoStore[T any, PT interface {
	*T
	Model
}] struct {
	be   *MongoBackend
	coll *mongo.Collection
	rels []Relation
	// bson names of relation fields, parallel to rels
	relKeys []string
}

func newMongoStore[T any, PT interface {
	*T
	Model
}](be *MongoBackend, rels []Relation) *mongoStore[T, PT] {
	table := tableOf[T, PT]()
	be.ensureIndexes(table)

	t := reflect.TypeOf((*T)(nil)).Elem()
	keys := make([]string, len(rels))
	for i, r := range rels {
		f, ok := t.FieldByName(r.Field)
		if !ok {
			panic(fmt.Sprintf("resource: %s has no field %s", t.Name(), r.Field))
		}
		keys[i] = bsonName(f)
	}
	return &mongoStore[T, PT]{be: be, coll: be.DB.Collection(table), rels: rels, relKeys: keys}
}

func mongoColumn(c string) string {
	if c == "id" {
		return "_id"
	}
	return c
}

func (s *mongoStore[T, PT]) filter(q Query) bson.D { return mongoFilter(q) }

// mongoFilter is the $match document for q: tenant first, then equality on
// each Where column in key order, then date ranges.
func mongoFilter(q Query) bson.D {
	f := bson.D{}
	if !q.AllTenants {
		f = append(f, bson.E{Key: "school_id", Value: q.SchoolID})
	}
	for _, k := range sortedKeys(q.Where) {
		f = append(f, bson.E{Key: mongoColumn(k), Value: q.Where[k]})
	}
	for _, r := range q.Ranges {
		cond := bson.D{}
		if r.From != nil {
			cond = append(cond, bson.E{Key: "$gte", Value: *r.From})
		}
		if r.To != nil {
			cond = append(cond, bson.E{Key: "$lte", Value: *r.To})
		}
		if len(cond) > 0 {
			f = append(f, bson.E{Key: r.Column, Value: cond})
		}
	}
	return f
}

// lookups resolves every relation with $lookup + $unwind; a dangling
// reference leaves the field absent.
func (s *mongoStore[T, PT]) lookups() mongo.Pipeline {
	p := mongo.Pipeline{}
	for i, r := range s.rels {
		as := s.relKeys[i]
		p = append(p,
			bson.D{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: r.Table},
				{Key: "localField", Value: r.Column},
				{Key: "foreignField", Value: "_id"},
				{Key: "as", Value: as},
			}}},
			bson.D{{Key: "$unwind", Value: bson.D{
				{Key: "path", Value: "$" + as},
				{Key: "preserveNullAndEmptyArrays", Value: true},
			}}},
		)
	}
	return p
}

// stripRelations clears display projections so they are never persisted.
func (s *mongoStore[T, PT]) stripRelations(m *T) {
	v := reflect.ValueOf(m).Elem()
	for _, r := range s.rels {
		f := v.FieldByName(r.Field)
		if f.IsValid() && f.CanSet() {
			f.Set(reflect.Zero(f.Type()))
		}
	}
}

func (s *mongoStore[T, PT]) Insert(ctx context.Context, m *T) error {
	cp := *m
	s.stripRelations(&cp)
	_, err := s.coll.InsertOne(ctx, &cp)
	return mapMongoErr(err)
}

func (s *mongoStore[T, PT]) Find(ctx context.Context, q Query) ([]T, error) {
	cur, err := s.coll.Aggregate(ctx, findPipeline(q, s.lookups()))
	if err != nil {
		return nil, mapMongoErr(err)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapMongoErr(err)
	}
	return out, nil
}

// findPipeline matches, sorts (with _id as tie-break), pages, then joins.
func findPipeline(q Query, lookups mongo.Pipeline) mongo.Pipeline {
	srt := q.sortOrDefault()
	dir := 1
	if srt.Desc {
		dir = -1
	}
	p := mongo.Pipeline{
		{{Key: "$match", Value: mongoFilter(q)}},
		{{Key: "$sort", Value: bson.D{{Key: mongoColumn(srt.Column), Value: dir}, {Key: "_id", Value: 1}}}},
	}
	if q.Offset > 0 {
		p = append(p, bson.D{{Key: "$skip", Value: int64(q.Offset)}})
	}
	if q.Limit > 0 {
		p = append(p, bson.D{{Key: "$limit", Value: int64(q.Limit)}})
	}
	return append(p, lookups...)
}

func (s *mongoStore[T, PT]) Count(ctx context.Context, q Query) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, s.filter(q))
	return n, mapMongoErr(err)
}

func (s *mongoStore[T, PT]) Get(ctx context.Context, schoolID, id uuid.UUID) (*T, error) {
	p := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}, {Key: "school_id", Value: schoolID}}}},
		{{Key: "$limit", Value: 1}},
	}
	p = append(p, s.lookups()...)
	cur, err := s.coll.Aggregate(ctx, p)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	defer cur.Close(ctx)
	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, mapMongoErr(err)
		}
		return nil, ErrNotFound
	}
	var m T
	if err := cur.Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *mongoStore[T, PT]) Replace(ctx context.Context, m *T) error {
	cp := *m
	s.stripRelations(&cp)
	meta := PT(&cp).Meta()
	res, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: meta.ID}, {Key: "school_id", Value: meta.SchoolID}},
		&cp)
	if err != nil {
		return mapMongoErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore[T, PT]) Delete(ctx context.Context, schoolID, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}, {Key: "school_id", Value: schoolID}})
	if err != nil {
		return mapMongoErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore[T, PT]) DeleteWhere(ctx context.Context, q Query) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, s.filter(q))
	if err != nil {
		return 0, mapMongoErr(err)
	}
	return res.DeletedCount, nil
}

func (s *mongoStore[T, PT]) Stats(ctx context.Context, q Query, fields []EnumField) (Stats, error) {
	cur, err := s.coll.Aggregate(ctx, statsPipeline(s.filter(q), fields))
	if err != nil {
		return newStats(fields), mapMongoErr(err)
	}
	defer cur.Close(ctx)
	if !cur.Next(ctx) {
		return newStats(fields), mapMongoErr(cur.Err()) // no documents → all zero
	}
	var row bson.M
	if err := cur.Decode(&row); err != nil {
		return newStats(fields), err
	}
	return statsFromRow(row, fields), nil
}

// statsPipeline: $match → $group (total + $push per field) → $project with
// $size/$filter per declared value, keyed by statsKey.
func statsPipeline(match bson.D, fields []EnumField) mongo.Pipeline {
	group := bson.D{
		{Key: "_id", Value: nil},
		{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
	}
	project := bson.D{{Key: "_id", Value: 0}, {Key: "total", Value: 1}}
	for _, f := range fields {
		group = append(group, bson.E{Key: f.Name, Value: bson.D{{Key: "$push", Value: "$" + mongoColumn(f.Column)}}})
		for _, v := range f.Values {
			project = append(project, bson.E{
				Key: statsKey(f.Name, v),
				Value: bson.D{{Key: "$size", Value: bson.D{{Key: "$filter", Value: bson.D{
					{Key: "input", Value: "$" + f.Name},
					{Key: "as", Value: "v"},
					{Key: "cond", Value: bson.D{{Key: "$eq", Value: bson.A{"$$v", v}}}},
				}}}}},
			})
		}
	}
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: group}},
		{{Key: "$project", Value: project}},
	}
}

// statsFromRow reads the single document statsPipeline produces.
func statsFromRow(row bson.M, fields []EnumField) Stats {
	st := newStats(fields)
	st.Total = toInt64(row["total"])
	for _, f := range fields {
		for _, v := range f.Values {
			st.add(f.Name, v, toInt64(row[statsKey(f.Name, v)]))
		}
	}
	return st
}

func statsKey(field, value string) string {
	return field + "__" + strings.ReplaceAll(value, ".", "_")
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	case int:
		return int64(n)
	}
	return 0
}

func mapMongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
