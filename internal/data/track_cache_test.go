package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotdown/spotdown/internal/domain/model"
	"github.com/spotdown/spotdown/internal/testutil"
)

func TestRedisTrackCache_NilClientNoOps(t *testing.T) {
	cache := NewRedisTrackCache(nil)
	ctx := context.Background()

	info, err := cache.Get(ctx, "abc123")
	assert.NoError(t, err)
	assert.Nil(t, info)

	err = cache.Set(ctx, "abc123", &model.TrackInfo{Name: "Song"}, time.Hour)
	assert.NoError(t, err)
}

func TestRedisTrackCache_EmptyTrackID(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client := testutil.SetupTestRedis(t)
	cache := NewRedisTrackCache(client)
	ctx := context.Background()

	_, err := cache.Get(ctx, "")
	assert.Error(t, err)

	err = cache.Set(ctx, "", &model.TrackInfo{}, time.Hour)
	assert.Error(t, err)
}

func TestRedisTrackCache_SetGetRoundtrip(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client := testutil.SetupTestRedis(t)
	cache := NewRedisTrackCache(client)
	ctx := context.Background()

	trackID := "test-roundtrip-" + time.Now().Format("150405.000000")
	t.Cleanup(func() { client.Del(context.Background(), cacheKey(trackID)) })

	info, err := cache.Get(ctx, trackID)
	require.NoError(t, err)
	assert.Nil(t, info, "expected cache miss for fresh key")

	want := &model.TrackInfo{Name: "Song Title", Artists: []model.Artist{{Name: "Some Artist"}, {Name: "Other Artist"}}}
	require.NoError(t, cache.Set(ctx, trackID, want, time.Minute))

	got, err := cache.Get(ctx, trackID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Artists, got.Artists)
}

func TestRedisTrackCache_TTLExpiry(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client := testutil.SetupTestRedis(t)
	cache := NewRedisTrackCache(client)
	ctx := context.Background()

	trackID := "test-expiry-" + time.Now().Format("150405.000000")
	t.Cleanup(func() { client.Del(context.Background(), cacheKey(trackID)) })

	require.NoError(t, cache.Set(ctx, trackID, &model.TrackInfo{Name: "Ephemeral"}, 50*time.Millisecond))

	require.Eventually(t, func() bool {
		got, err := cache.Get(ctx, trackID)
		return err == nil && got == nil
	}, 2*time.Second, 25*time.Millisecond, "expected cached track to expire")
}
