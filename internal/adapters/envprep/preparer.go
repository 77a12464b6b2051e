// Package envprep computes the per-build environment: cache directory,
// output roots, image configuration and the resolved transform
// capability.
package envprep

import (
	"fmt"
	"os"
	"runtime"

	"go.trai.ch/pict/internal/adapters/imaging"
	"go.trai.ch/pict/internal/adapters/shell"
	"go.trai.ch/pict/internal/core/domain"
	"go.trai.ch/pict/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultCacheDir is used when the manifest does not name one.
const DefaultCacheDir = ".pict-cache"

var _ ports.Preparer = (*Preparer)(nil)

// Preparer implements ports.Preparer. It runs once per build.
type Preparer struct {
	logger ports.Logger
}

// New creates a Preparer.
func New(logger ports.Logger) *Preparer {
	return &Preparer{logger: logger}
}

// Prepare resolves the environment and the transform capability. Failure
// to create the cache directory disables caching for the whole build and
// logs a warning; caching is an optimization, never a correctness
// requirement.
func (p *Preparer) Prepare(cfg *domain.BuildConfig) (*domain.Environment, ports.Transformer, error) {
	env := &domain.Environment{
		CacheDir:    cfg.CacheDir,
		SourceRoot:  cfg.SourceRoot,
		ServerRoot:  cfg.ServerRoot,
		ClientRoot:  cfg.ClientRoot,
		AssetsDir:   cfg.AssetsDir,
		Image:       cfg.Image,
		Parallelism: cfg.Parallelism,
	}
	if env.CacheDir == "" {
		env.CacheDir = DefaultCacheDir
	}
	if env.Parallelism == 0 {
		env.Parallelism = runtime.NumCPU()
	}

	// MkdirAll is idempotent under concurrent attempts, so a shared cache
	// dir across processes is safe.
	if err := os.MkdirAll(env.CacheDir, 0o750); err != nil {
		p.logger.Warn(fmt.Sprintf("cache directory %s unusable, caching disabled: %v", env.CacheDir, err))
		env.CacheEnabled = false
	} else {
		env.CacheEnabled = true
	}

	transformer, err := p.resolveTransformer(cfg.Transformer)
	if err != nil {
		return nil, nil, err
	}
	return env, transformer, nil
}

// resolveTransformer picks the capability once; the runner receives it
// injected and never looks it up again.
func (p *Preparer) resolveTransformer(cfg domain.TransformerConfig) (ports.Transformer, error) {
	switch cfg.Kind {
	case domain.TransformerBuiltin, "":
		return imaging.New(), nil
	case domain.TransformerCommand:
		return shell.New(cfg.Command, p.logger), nil
	default:
		return nil, zerr.With(zerr.New("unknown transformer kind"), "kind", string(cfg.Kind))
	}
}
