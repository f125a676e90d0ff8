// Package data provides the in-memory download registry and the Redis-backed
// track metadata cache.
package data

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/spotdown/spotdown/internal/domain/model"
)

// DownloadStore is the sole owner of Download records. It is an explicit,
// internally synchronized store rather than ambient process state: the
// orchestrator mutates records through it and the HTTP handlers read through
// it, concurrently.
//
// Single-writer discipline: after creation, only the worker goroutine assigned
// to a record calls Update for it. The mutex exists for the reader side and
// for Delete/Sweep racing against writers.
type DownloadStore struct {
	mu        sync.RWMutex
	downloads map[string]*model.Download
	logger    *slog.Logger
}

// NewDownloadStore constructs an empty DownloadStore.
func NewDownloadStore(logger *slog.Logger) *DownloadStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DownloadStore{
		downloads: make(map[string]*model.Download),
		logger:    logger.With("component", "download_store"),
	}
}

// Create inserts a new record. The record must carry a unique ID.
func (s *DownloadStore) Create(d *model.Download) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *d
	s.downloads[d.ID] = &cp
}

// Get returns a copy of the record, or ErrDownloadNotFound.
func (s *DownloadStore) Get(id string) (*model.Download, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.downloads[id]
	if !ok {
		return nil, ErrDownloadNotFound
	}
	cp := *d
	return &cp, nil
}

// Update applies fn to the record under the store lock. It returns
// ErrDownloadNotFound when the record was deleted or evicted in the meantime,
// which the worker treats as "stop touching this job".
func (s *DownloadStore) Update(id string, fn func(*model.Download)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.downloads[id]
	if !ok {
		return ErrDownloadNotFound
	}
	fn(d)
	return nil
}

// Delete removes the record and its temp directory. The directory is removed
// first so a record never outlives a dangling reference to deleted storage;
// the record itself is removed regardless of filesystem errors.
func (s *DownloadStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.downloads[id]
	if !ok {
		return ErrDownloadNotFound
	}
	s.removeTempDirLocked(d)
	delete(s.downloads, id)
	return nil
}

// Sweep evicts every record older than maxAge, deleting temp storage first.
// It returns the number of evicted records.
func (s *DownloadStore) Sweep(now time.Time, maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, d := range s.downloads {
		if now.Sub(d.CreatedAt) <= maxAge {
			continue
		}
		s.removeTempDirLocked(d)
		delete(s.downloads, id)
		evicted++
	}
	if evicted > 0 {
		s.logger.Info("swept stale downloads", "count", evicted, "max_age", maxAge)
	}
	return evicted
}

// Len returns the number of live records.
func (s *DownloadStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.downloads)
}

func (s *DownloadStore) removeTempDirLocked(d *model.Download) {
	if d.TempDir == "" {
		return
	}
	if err := os.RemoveAll(d.TempDir); err != nil {
		s.logger.Error("failed to remove temp directory", "download_id", d.ID, "dir", d.TempDir, "error", err)
	}
	d.TempDir = ""
}
