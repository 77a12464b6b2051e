package ports

import "go.trai.ch/pict/internal/core/domain"

// ManifestLoader reads the build manifest and produces the transform
// registry plus the raw build configuration the preparer consumes.
type ManifestLoader interface {
	Load(path string) (*domain.Registry, *domain.BuildConfig, error)
}

// Preparer computes the per-build environment exactly once: cache
// directory (created if possible, caching disabled on failure), output
// roots, image configuration, and the resolved transform capability.
type Preparer interface {
	Prepare(cfg *domain.BuildConfig) (*domain.Environment, Transformer, error)
}
