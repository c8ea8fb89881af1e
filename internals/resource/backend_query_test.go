package resource

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

type ledgerRow struct {
	Base `bson:",inline"`
	Kind string `gorm:"column:kind" bson:"kind"`
	Name string `gorm:"column:name" bson:"name"`
}

func (ledgerRow) TableName() string { return "ledger_rows" }

var kindField = EnumField{Name: "kind", Column: "kind", Values: []string{"tool", "toy"}}

/* ===================== MONGO ===================== */

func TestMongoFilter(t *testing.T) {
	school, id := uuid.New(), uuid.New()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	got := mongoFilter(Query{
		SchoolID: school,
		Where:    map[string]any{"kind": "tool", "id": id},
		Ranges:   []Range{{Column: "created_at", From: &from, To: &to}},
	})
	assert.Equal(t, bson.D{
		{Key: "school_id", Value: school},
		{Key: "_id", Value: id},
		{Key: "kind", Value: "tool"},
		{Key: "created_at", Value: bson.D{{Key: "$gte", Value: from}, {Key: "$lte", Value: to}}},
	}, got)

	all := mongoFilter(Query{AllTenants: true, Where: map[string]any{"kind": "toy"}})
	assert.Equal(t, bson.D{{Key: "kind", Value: "toy"}}, all)
}

func TestMongoFindPipeline(t *testing.T) {
	school := uuid.New()

	paged := findPipeline(Query{SchoolID: school, Sort: Sort{Column: "name"}, Offset: 20, Limit: 10}, nil)
	require.Len(t, paged, 4)
	assert.Equal(t, bson.D{{Key: "$match", Value: bson.D{{Key: "school_id", Value: school}}}}, paged[0])
	assert.Equal(t, bson.D{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}}}, paged[1])
	assert.Equal(t, bson.D{{Key: "$skip", Value: int64(20)}}, paged[2])
	assert.Equal(t, bson.D{{Key: "$limit", Value: int64(10)}}, paged[3])

	first := findPipeline(Query{SchoolID: school}, nil)
	require.Len(t, first, 2, "no $skip/$limit when unpaged")
	assert.Equal(t, bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}}}, first[1])
}

func TestMongoStatsPipeline(t *testing.T) {
	match := bson.D{{Key: "school_id", Value: uuid.New()}}
	p := statsPipeline(match, []EnumField{kindField})
	require.Len(t, p, 3)

	assert.Equal(t, "$match", p[0][0].Key)
	assert.Equal(t, match, p[0][0].Value)

	assert.Equal(t, "$group", p[1][0].Key)
	assert.Equal(t, bson.D{
		{Key: "_id", Value: nil},
		{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
		{Key: "kind", Value: bson.D{{Key: "$push", Value: "$kind"}}},
	}, p[1][0].Value)

	assert.Equal(t, "$project", p[2][0].Key)
	project := p[2][0].Value.(bson.D)
	require.Len(t, project, 4, "_id, total and one count per declared value")
	assert.Equal(t, "kind__tool", project[2].Key)
	assert.Equal(t, bson.D{{Key: "$size", Value: bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: "$kind"},
		{Key: "as", Value: "v"},
		{Key: "cond", Value: bson.D{{Key: "$eq", Value: bson.A{"$$v", "tool"}}}},
	}}}}}, project[2].Value)
	assert.Equal(t, "kind__toy", project[3].Key)
}

func TestMongoStatsFromRow(t *testing.T) {
	st := statsFromRow(bson.M{"total": int32(3), "kind__tool": int32(2), "kind__toy": int64(1)}, []EnumField{kindField})
	assert.Equal(t, map[string]any{
		"total": int64(3),
		"kind":  map[string]int64{"tool": 2, "toy": 1},
	}, st.Map())

	empty := statsFromRow(bson.M{}, []EnumField{kindField})
	assert.Equal(t, int64(0), empty.Total)
	assert.Equal(t, map[string]int64{"tool": 0, "toy": 0}, empty.Buckets["kind"])
}

/* ===================== GORM ===================== */

func dryRunStore(t *testing.T) *gormStore[ledgerRow, *ledgerRow] {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return &gormStore[ledgerRow, *ledgerRow]{db: db}
}

func TestGormFindSQL(t *testing.T) {
	s := dryRunStore(t)
	school := uuid.New()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	stmt := s.findTx(context.Background(), Query{
		SchoolID: school,
		Where:    map[string]any{"kind": "tool"},
		Ranges:   []Range{{Column: "created_at", From: &from}},
		Sort:     Sort{Column: "name", Desc: true},
		Offset:   20,
		Limit:    10,
	}).Find(&[]ledgerRow{}).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "FROM `ledger_rows`")
	assert.Contains(t, sql, "WHERE school_id = ? AND `kind` = ? AND `created_at` >= ?")
	assert.Contains(t, sql, "ORDER BY `name` DESC")
	assert.Contains(t, sql, "LIMIT ? OFFSET ?")
	assert.Equal(t, []any{school, "tool", from, 10, 20}, stmt.Vars)

	all := s.findTx(context.Background(), Query{AllTenants: true}).Find(&[]ledgerRow{}).Statement
	assert.NotContains(t, all.SQL.String(), "school_id")
}

func TestGormGroupCountSQL(t *testing.T) {
	s := dryRunStore(t)
	school := uuid.New()

	var rows []struct {
		Value *string
		N     int64
	}
	stmt := groupCount(s.scoped(context.Background(), Query{SchoolID: school}), kindField).Find(&rows).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "SELECT `kind` AS value, COUNT(*) AS n FROM `ledger_rows`")
	assert.Contains(t, sql, "WHERE school_id = ?")
	assert.Contains(t, sql, "GROUP BY `kind`")
	assert.Equal(t, []any{school}, stmt.Vars)
}
