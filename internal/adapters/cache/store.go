// Package cache implements the on-disk artifact cache with its two
// validity policies: local-backed entries are valid by presence alone,
// remote-backed entries expire.
package cache

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/pict/internal/core/domain"
	"go.trai.ch/pict/internal/core/ports"
	"go.trai.ch/zerr"
)

// remoteSuffix distinguishes remote-backed entries from local-backed ones
// sharing the same cache directory.
const remoteSuffix = ".remote.json"

var _ ports.CacheStore = (*Store)(nil)

// Store implements ports.CacheStore on a flat cache directory. Keys are
// derived from the output identity's base name, so lookups are
// reproducible across builds sharing the directory. Entries are only ever
// replaced wholesale; nothing mutates an entry in place.
type Store struct {
	dir   string
	clock clockwork.Clock
}

// NewStore creates a Store rooted at dir. The directory is created by the
// environment preparer, not here.
func NewStore(dir string, clock clockwork.Clock) *Store {
	return &Store{
		dir:   filepath.Clean(dir),
		clock: clock,
	}
}

// entryPath derives the cache key for an output identity.
func (s *Store) entryPath(output string, kind domain.SourceKind) string {
	name := filepath.Base(output)
	if kind == domain.SourceRemote {
		name += remoteSuffix
	}
	return filepath.Join(s.dir, name)
}

// Lookup returns the cached artifact for the output identity, nil on a
// miss. A remote-backed entry that exists but cannot be decoded returns
// an error wrapping domain.ErrCorruptCache.
func (s *Store) Lookup(output string, kind domain.SourceKind) (*domain.CacheHit, error) {
	path := s.entryPath(output, kind)

	//nolint:gosec // Entry path is derived from the trusted cache dir
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read cache entry"), "entry", path)
	}

	if kind == domain.SourceLocal {
		return &domain.CacheHit{Data: data}, nil
	}
	return s.decodeRemote(path, data)
}

// decodeRemote validates a remote-backed entry. Parse or structure
// failures are corruption, not misses; only a passed expiry falls through
// to regeneration.
func (s *Store) decodeRemote(path string, data []byte) (*domain.CacheHit, error) {
	var entry domain.RemoteEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCorruptCache, err.Error()), "entry", path)
	}
	if entry.Content == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrCorruptCache, "entry has no content"), "entry", path)
	}

	content, err := base64.StdEncoding.DecodeString(entry.Content)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCorruptCache, err.Error()), "entry", path)
	}

	if entry.ExpiresAt <= s.clock.Now().UnixMilli() {
		return nil, nil
	}
	return &domain.CacheHit{Data: content}, nil
}

// Write persists a cache entry, replacing any previous one. expiresAt is
// ignored for local-backed entries.
func (s *Store) Write(output string, kind domain.SourceKind, data []byte, expiresAt int64) error {
	path := s.entryPath(output, kind)

	if kind == domain.SourceRemote {
		entry := domain.RemoteEntry{
			Content:   base64.StdEncoding.EncodeToString(data),
			ExpiresAt: expiresAt,
		}
		encoded, err := json.Marshal(entry)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to encode cache entry"), "entry", path)
		}
		data = encoded
	}

	if err := writeReplace(path, data); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write cache entry"), "entry", path)
	}
	return nil
}

// Purge removes every entry in the cache directory, leaving the directory
// itself in place.
func (s *Store) Purge() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read cache directory")
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(s.dir, entry.Name())); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove cache entry"), "entry", entry.Name())
		}
	}
	return nil
}

// writeReplace writes data via a temp file and rename so a concurrent
// reader never observes a partial entry.
func writeReplace(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}
