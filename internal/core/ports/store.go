package ports

import "go.trai.ch/pict/internal/core/domain"

// CacheStore looks up and writes cached artifacts keyed by output
// identity. Local-backed entries are valid by presence alone;
// remote-backed entries carry an expiry and are valid until it passes.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Lookup returns the cached artifact for an output identity.
	// Returns nil, nil on a miss (absent, or remote-backed and expired).
	// A remote-backed entry that exists but cannot be parsed returns an
	// error wrapping domain.ErrCorruptCache; it is never a miss.
	Lookup(output string, kind domain.SourceKind) (*domain.CacheHit, error)

	// Write persists a cache entry, replacing any previous one
	// wholesale. expiresAt is ignored for local-backed entries. Callers
	// treat failure as a warning, never as fatal.
	Write(output string, kind domain.SourceKind, data []byte, expiresAt int64) error
}
