package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedRecipe struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedRecipe) func() error {
		return func() error {
			fetches++
			dest.ID = 7
			dest.Title = "Pancakes"
			return nil
		}
	}

	var first cachedRecipe
	require.NoError(t, Aside(ctx, RecipeKey(7), &first, RecipeTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Pancakes", first.Title)

	// Second read must come from the cache.
	var second cachedRecipe
	require.NoError(t, Aside(ctx, RecipeKey(7), &second, RecipeTTL, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var dest cachedRecipe
	fetchErr := errors.New("db down")
	err := Aside(ctx, RecipeKey(1), &dest, time.Minute, func() error { return fetchErr })
	assert.ErrorIs(t, err, fetchErr)

	found, err := GetJSON(ctx, RecipeKey(1), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidateRecipe(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, RecipeKey(3), cachedRecipe{ID: 3, Title: "Soup"}, time.Minute))
	require.True(t, mr.Exists(RecipeKey(3)))

	InvalidateRecipe(ctx, 3)
	assert.False(t, mr.Exists(RecipeKey(3)))
}

func TestAside_NoClientFallsThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var dest cachedRecipe
	require.NoError(t, Aside(ctx, RecipeKey(9), &dest, time.Minute, func() error {
		dest.ID = 9
		return nil
	}))
	assert.Equal(t, uint(9), dest.ID)
}
