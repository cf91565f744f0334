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

type item struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = Close() })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *item) func() error {
		return func() error {
			calls++
			*dest = item{ID: 1, Name: "first"}
			return nil
		}
	}

	var a item
	require.NoError(t, Aside(ctx, "post", PostKey(ctx, 1), &a, PostTTL, fetch(&a)))
	assert.Equal(t, "first", a.Name)
	assert.True(t, mr.Exists("post:1:g0"))

	var b item
	require.NoError(t, Aside(ctx, "post", PostKey(ctx, 1), &b, PostTTL, fetch(&b)))
	assert.Equal(t, "first", b.Name)
	assert.Equal(t, 1, calls, "second lookup is served from cache")

	mr.FastForward(PostTTL + time.Second)
	var c item
	require.NoError(t, Aside(ctx, "post", PostKey(ctx, 1), &c, PostTTL, fetch(&c)))
	assert.Equal(t, 2, calls)
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var dest item
	err := Aside(ctx, "post", PostKey(ctx, 2), &dest, PostTTL, func() error {
		return errors.New("boom")
	})
	assert.Error(t, err)
	assert.False(t, mr.Exists("post:2:g0"))
}

func TestAside_WithoutClientFetchesEveryTime(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	calls := 0
	var dest item
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(ctx, "post", PostKey(ctx, 3), &dest, PostTTL, func() error {
			calls++
			return nil
		}))
	}
	assert.Equal(t, 2, calls)
}

func TestAside_RedisDownFallsBackToFetch(t *testing.T) {
	mr := setupMiniredis(t)
	mr.Close()
	ctx := context.Background()

	calls := 0
	var dest item
	err := Aside(ctx, "post", PostKey(ctx, 4), &dest, PostTTL, func() error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestInvalidatePost_BumpsListGeneration(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	before := PostsListKey(ctx, 10)
	assert.Equal(t, "posts:list:g0:l10", before)

	require.NoError(t, SetJSON(ctx, PostKey(ctx, 5), item{ID: 5}, PostTTL))
	InvalidatePost(ctx, 5)

	assert.False(t, mr.Exists("post:5:g0"))
	assert.Equal(t, "post:5:g1", PostKey(ctx, 5))
	after := PostsListKey(ctx, 10)
	assert.Equal(t, "posts:list:g1:l10", after)
	assert.NotEqual(t, before, after)
}

func TestInvalidatePost_RetiresInFlightSnapshot(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var got item
	err := Aside(ctx, "post", PostKey(ctx, 6), &got, PostTTL, func() error {
		got = item{ID: 6, Name: "before write"}
		// A writer commits and invalidates while this reader is still fetching.
		InvalidatePost(ctx, 6)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "before write", got.Name)

	var fresh item
	hit, err := GetJSON(ctx, PostKey(ctx, 6), &fresh)
	require.NoError(t, err)
	assert.False(t, hit, "snapshot read before the write must not be served")
	assert.True(t, mr.Exists("post:6:g0"), "stale snapshot is parked under the retired generation")
}
