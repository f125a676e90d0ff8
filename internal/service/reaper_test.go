package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotdown/spotdown/config"
	"github.com/spotdown/spotdown/internal/data"
	"github.com/spotdown/spotdown/internal/domain/model"
)

func TestNewReaperService_Validation(t *testing.T) {
	_, err := NewReaperService(ReaperServiceOptions{
		Config: config.ReaperConfig{Interval: time.Minute},
		TTL:    time.Hour,
	})
	require.Error(t, err)

	_, err = NewReaperService(ReaperServiceOptions{
		Store:  data.NewDownloadStore(testLogger()),
		Config: config.ReaperConfig{Interval: time.Minute},
	})
	require.Error(t, err)
}

func TestReaperService_SweepEvictsStale(t *testing.T) {
	store := data.NewDownloadStore(testLogger())
	store.Create(&model.Download{
		ID:        "stale",
		Status:    model.StatusError,
		CreatedAt: time.Now().Add(-2 * time.Hour),
	})
	store.Create(&model.Download{
		ID:        "fresh",
		Status:    model.StatusDownloading,
		CreatedAt: time.Now(),
	})

	svc, err := NewReaperService(ReaperServiceOptions{
		Store:  store,
		Config: config.ReaperConfig{Interval: time.Minute},
		TTL:    time.Hour,
		Logger: testLogger(),
	})
	require.NoError(t, err)

	svc.sweep(context.Background())

	assert.Equal(t, 1, store.Len())
	_, err = store.Get("stale")
	assert.Error(t, err)
	_, err = store.Get("fresh")
	assert.NoError(t, err)
}

func TestReaperService_Run_StopsOnCancel(t *testing.T) {
	store := data.NewDownloadStore(testLogger())
	svc, err := NewReaperService(ReaperServiceOptions{
		Store:  store,
		Config: config.ReaperConfig{Interval: 10 * time.Millisecond},
		TTL:    time.Hour,
		Logger: testLogger(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case runErr := <-done:
		assert.NoError(t, runErr)
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after cancellation")
	}
}
