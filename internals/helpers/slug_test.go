package helper

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "st-mary-s-high-school", Slugify("  St. Mary's High School ", 0))
	assert.Equal(t, "ecole-elementaire", Slugify("École Élémentaire", 0))
	assert.Equal(t, "item", Slugify("!!!", 0))
	assert.Equal(t, "abc", Slugify("abc-def", 4))

	long := Slugify(strings.Repeat("a", 150), 0)
	assert.Len(t, long, 100)
}

func TestEnsureUniqueSlug(t *testing.T) {
	taken := map[string]bool{"greenfield": true, "greenfield-2": true}
	exists := func(_ context.Context, s string) (bool, error) { return taken[s], nil }

	got, err := EnsureUniqueSlug(context.Background(), "greenfield", 0, exists)
	require.NoError(t, err)
	assert.Equal(t, "greenfield-3", got)

	got, err = EnsureUniqueSlug(context.Background(), "riverside", 0, exists)
	require.NoError(t, err)
	assert.Equal(t, "riverside", got)

	boom := errors.New("db down")
	_, err = EnsureUniqueSlug(context.Background(), "x", 0, func(context.Context, string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}

func TestEnsureUniqueSlug_RespectsMaxLen(t *testing.T) {
	base := strings.Repeat("b", 10)
	got, err := EnsureUniqueSlug(context.Background(), base, 10, func(_ context.Context, s string) (bool, error) {
		return s == base, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "bbbbbbbb-2", got)
}
