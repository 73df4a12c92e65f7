package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/beatvault/beatvault/internal/model"
)

func TestStateCacheGetSet(t *testing.T) {
	c := New(16, time.Minute)
	_, ok := c.Get("missing")
	require.False(t, ok)

	c.Set("beats/detail/b1", "payload")
	got, ok := c.Get("beats/detail/b1")
	require.True(t, ok)
	require.Equal(t, "payload", got)
}

func TestStateCacheTTLExpiry(t *testing.T) {
	c := New(16, 20*time.Millisecond)
	c.Set("k", 1)
	_, ok := c.Get("k")
	require.True(t, ok)

	require.Eventually(t, func() bool {
		_, ok := c.Get("k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestStateCacheInvalidateExact(t *testing.T) {
	c := New(16, time.Minute)
	c.Set(BeatDetailKey("b1"), 1)
	c.Set(BeatDetailKey("b2"), 2)

	c.Invalidate(BeatDetailKey("b1"))
	_, ok := c.Get(BeatDetailKey("b1"))
	require.False(t, ok)
	_, ok = c.Get(BeatDetailKey("b2"))
	require.True(t, ok)
}

func TestStateCacheInvalidatePrefix(t *testing.T) {
	c := New(16, time.Minute)
	c.Set(BeatListKey(model.BeatFilters{}), "all")
	c.Set(BeatListKey(model.BeatFilters{Genre: "trap"}), "trap")
	c.Set(BeatDetailKey("b1"), "detail")
	c.Set(SubscriptionKey("u1"), "sub")

	c.InvalidatePrefix(BeatListPrefix)
	_, ok := c.Get(BeatListKey(model.BeatFilters{}))
	require.False(t, ok)
	_, ok = c.Get(BeatListKey(model.BeatFilters{Genre: "trap"}))
	require.False(t, ok)
	_, ok = c.Get(BeatDetailKey("b1"))
	require.True(t, ok)
	_, ok = c.Get(SubscriptionKey("u1"))
	require.True(t, ok)
}

func TestSubscriptionPrefixCoversStatusAndStats(t *testing.T) {
	c := New(16, time.Minute)
	c.Set(SubscriptionKey("u1"), "sub")
	c.Set(DownloadStatsKey("u1"), "stats")
	c.Set(SubscriptionKey("u2"), "other")

	c.InvalidatePrefix(SubscriptionPrefix("u1"))
	_, ok := c.Get(SubscriptionKey("u1"))
	require.False(t, ok)
	_, ok = c.Get(DownloadStatsKey("u1"))
	require.False(t, ok)
	_, ok = c.Get(SubscriptionKey("u2"))
	require.True(t, ok)
}

func TestBeatListKeyCanonical(t *testing.T) {
	a := BeatListKey(model.BeatFilters{Genre: "trap", MinBPM: 120, MaxBPM: 150})
	b := BeatListKey(model.BeatFilters{MaxBPM: 150, Genre: "trap", MinBPM: 120})
	require.Equal(t, a, b)
	require.Equal(t, "beats/list/genre=trap&maxBpm=150&minBpm=120", a)

	require.Equal(t, "beats/list/", BeatListKey(model.BeatFilters{}))
	require.NotEqual(t, a, BeatListKey(model.BeatFilters{Genre: "trap", MinBPM: 121, MaxBPM: 150}))
}

func TestKeyLayout(t *testing.T) {
	require.Equal(t, "beats/detail/b1", BeatDetailKey("b1"))
	require.Equal(t, "subscription/u1/status", SubscriptionKey("u1"))
	require.Equal(t, "subscription/u1/stats", DownloadStatsKey("u1"))
	require.Equal(t, "downloads/u1/history", DownloadHistoryKey("u1"))
}
