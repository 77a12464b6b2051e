package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/pict/internal/core/domain"
	"go.trai.ch/pict/internal/core/ports"
	"go.trai.ch/zerr"
)

// sourceGroup shares one load across every job of a source. The Once is
// the per-source barrier: the first job to need the bytes performs the
// load, and its completed result is visible to all later callers. A load
// failure fans out to every job of the group.
type sourceGroup struct {
	source  domain.Source
	root    string
	fetcher ports.Fetcher

	once    sync.Once
	content *domain.SourceContent
	err     error
}

// load returns the source bytes and freshness stamp, loading at most
// once. The returned content is shared read-only; jobs must not mutate
// it.
func (g *sourceGroup) load(ctx context.Context) (*domain.SourceContent, error) {
	g.once.Do(func() {
		g.content, g.err = g.doLoad(ctx)
	})
	return g.content, g.err
}

func (g *sourceGroup) doLoad(ctx context.Context) (*domain.SourceContent, error) {
	switch g.source.Kind {
	case domain.SourceRemote:
		data, expiresAt, err := g.fetcher.Fetch(ctx, g.source.ID)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrSourceLoad, err.Error()), "source", g.source.ID)
		}
		return &domain.SourceContent{Data: data, ExpiresAt: expiresAt}, nil
	default:
		path := g.source.ID
		if g.root != "" {
			path = filepath.Join(g.root, path)
		}
		data, err := os.ReadFile(path) //nolint:gosec // Source paths come from the user's manifest
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrSourceLoad, err.Error()), "source", g.source.ID)
		}
		return &domain.SourceContent{Data: data, ExpiresAt: 0}, nil
	}
}
