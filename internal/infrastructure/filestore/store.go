package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/spaceplace/internal/cachemanager"
	"github.com/zjrosen/spaceplace/internal/log"
	"github.com/zjrosen/spaceplace/internal/registry"
)

// Options configures a file store.
type Options struct {
	// CacheEnabled keeps decoded documents in memory keyed by file path,
	// size and modification time, so reloading an unchanged file skips decoding.
	CacheEnabled bool
	// CacheTTL bounds how long a decoded document is kept.
	CacheTTL time.Duration
}

// DefaultOptions enables the decode cache with the cache manager's default expiration.
func DefaultOptions() Options {
	return Options{CacheEnabled: true, CacheTTL: cachemanager.DefaultExpiration}
}

// store reads and writes one document of records of type R.
type store[R any] struct {
	path    string
	kind    string
	format  Format
	ttl     time.Duration
	decoded *cachemanager.ReadThroughCache[string, Document[R], string]
}

func newStore[R any](path, kind string, opts Options) (*store[R], error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	s := &store[R]{
		path:   path,
		kind:   kind,
		format: format,
		ttl:    opts.CacheTTL,
	}
	if s.ttl <= 0 {
		s.ttl = cachemanager.DefaultExpiration
	}
	manager := cachemanager.NewInMemoryCacheManager[string, Document[R]](
		"document:"+kind, s.ttl, cachemanager.DefaultCleanupInterval)
	s.decoded = cachemanager.NewReadThroughCache[string, Document[R], string](manager, s.readFile, !opts.CacheEnabled)
	return s, nil
}

func (s *store[R]) readFile(_ context.Context, path string) (Document[R], error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from configuration
	if err != nil {
		return Document[R]{}, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := decode[R](s.format, data)
	if err != nil {
		return Document[R]{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	if doc.Kind != "" && doc.Kind != s.kind {
		return Document[R]{}, fmt.Errorf("decoding %s: document holds %q, want %q", path, doc.Kind, s.kind)
	}
	log.Debug(log.CatStore, "Decoded document", "path", path, "snapshot", doc.Snapshot, "items", len(doc.Items))
	return doc, nil
}

// read returns the stored items, or registry.ErrNoData when the file is missing.
func (s *store[R]) read(ctx context.Context) (Document[R], error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Document[R]{}, registry.ErrNoData
	}
	if err != nil {
		return Document[R]{}, fmt.Errorf("stat %s: %w", s.path, err)
	}
	key := fmt.Sprintf("%s|%d|%d", s.path, info.Size(), info.ModTime().UnixNano())
	return s.decoded.Get(ctx, key, s.path, s.ttl)
}

// write replaces the file with a new document holding items and drops any
// cached decode of the previous contents. A zero nextID is left out.
func (s *store[R]) write(ctx context.Context, items []R, nextID int) (Document[R], error) {
	doc := Document[R]{
		Version:  DocumentVersion,
		Kind:     s.kind,
		Snapshot: uuid.NewString(),
		SavedAt:  time.Now().UTC(),
		NextID:   nextID,
		Items:    items,
	}
	data, err := encode(s.format, doc)
	if err != nil {
		return doc, fmt.Errorf("encoding %s: %w", s.path, err)
	}
	if err := writeAtomic(s.path, data); err != nil {
		return doc, err
	}
	if err := s.decoded.Invalidate(ctx); err != nil {
		log.ErrorErr(log.CatCache, "Failed to invalidate decoded documents", err, "path", s.path)
	}
	log.Debug(log.CatStore, "Wrote document", "path", s.path, "snapshot", doc.Snapshot, "items", len(items))
	return doc, nil
}

// writeAtomic writes data to a temp file beside path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
