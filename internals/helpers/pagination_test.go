package helper

import (
	"math"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, query string) Paging {
	t.Helper()
	var got Paging
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, DefaultPerPage, MaxPerPage)
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/"+query, nil), -1)
	require.NoError(t, err)
	return got
}

func TestResolvePaging(t *testing.T) {
	cases := []struct {
		query string
		want  Paging
	}{
		{"", Paging{Page: 1, PerPage: 10, Offset: 0, Limit: 10}},
		{"?page=3&limit=20", Paging{Page: 3, PerPage: 20, Offset: 40, Limit: 20}},
		{"?page=2&per_page=5&limit=50", Paging{Page: 2, PerPage: 5, Offset: 5, Limit: 5}},
		{"?page=0&limit=-4", Paging{Page: 1, PerPage: 10, Offset: 0, Limit: 10}},
		{"?page=abc&limit=xyz", Paging{Page: 1, PerPage: 10, Offset: 0, Limit: 10}},
		{"?limit=1000", Paging{Page: 1, PerPage: 100, Offset: 0, Limit: 100}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, resolve(t, tc.query), tc.query)
	}
}

func TestResolvePaging_HugePageKeepsOffsetPositive(t *testing.T) {
	for _, page := range []string{"922337203685477581", strconv.Itoa(math.MaxInt), "99999999999999999999999"} {
		got := resolve(t, "?limit=10&page="+page)
		assert.Equal(t, math.MaxInt/10, got.Page, page)
		assert.Positive(t, got.Offset, page)
		assert.Equal(t, (got.Page-1)*10, got.Offset, page)
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(25, 3, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = BuildPaginationFromPage(30, 1, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrev)

	empty := BuildPaginationFromPage(0, 1, 10)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
}
