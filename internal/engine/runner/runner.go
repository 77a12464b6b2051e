// Package runner invokes the transform capability and materializes
// artifacts: best-effort write-through to the cache, guaranteed atomic
// write of the final artifact.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/pict/internal/core/domain"
	"go.trai.ch/pict/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner produces one artifact per call. The transform capability is
// injected once at construction, never resolved per job.
type Runner struct {
	transformer ports.Transformer
	store       ports.CacheStore
	logger      ports.Logger
}

// New creates a Runner.
func New(transformer ports.Transformer, store ports.CacheStore, logger ports.Logger) *Runner {
	return &Runner{
		transformer: transformer,
		store:       store,
		logger:      logger,
	}
}

// Generate runs the transform and writes the artifact. On transform
// failure nothing is written. On success the final artifact write is
// guaranteed: the destination is acquired up front and finalized on every
// exit path, so a cache write failure in between can only produce a
// warning, never a missing artifact.
func (r *Runner) Generate(ctx context.Context, spec domain.TransformSpec, content *domain.SourceContent, env *domain.Environment) ([]byte, error) {
	artifact, err := r.transformer.Transform(ctx, content.Data, spec.Options, env.Image)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "transform failed"), "output", spec.Output)
	}

	if err := r.emit(env.OutputPath(spec.Output), artifact, func() {
		if !env.CacheEnabled {
			return
		}
		if cerr := r.store.Write(spec.Output, spec.Source.Kind, artifact, content.ExpiresAt); cerr != nil {
			r.logger.Warn(fmt.Sprintf("cache write for %s failed: %v", spec.Output, cerr))
		}
	}); err != nil {
		return nil, err
	}
	return artifact, nil
}

// Emit writes previously cached bytes to the output location. Used on
// cache hits.
func (r *Runner) Emit(output string, data []byte, env *domain.Environment) error {
	return r.emit(env.OutputPath(output), data, nil)
}

// emit atomically materializes data at path. inScope, when non-nil, runs
// after the artifact bytes are staged but before finalization; the
// deferred finalize runs regardless of how inScope exits.
func (r *Runner) emit(path string, data []byte, inScope func()) (err error) {
	if mkErr := os.MkdirAll(filepath.Dir(path), 0o750); mkErr != nil {
		return zerr.With(zerr.Wrap(mkErr, "failed to create output directory"), "output", path)
	}

	tmp, tmpErr := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if tmpErr != nil {
		return zerr.With(zerr.Wrap(tmpErr, "failed to stage output file"), "output", path)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
			return
		}
		if cerr := finalize(tmp, path); cerr != nil {
			err = zerr.With(zerr.Wrap(cerr, "failed to finalize output file"), "output", path)
		}
	}()

	if _, werr := tmp.Write(data); werr != nil {
		return zerr.With(zerr.Wrap(werr, "failed to write output file"), "output", path)
	}

	if inScope != nil {
		inScope()
	}
	return nil
}

// finalize flushes the staged file and moves it into place. Readers see
// either the full artifact or nothing.
func finalize(tmp *os.File, path string) error {
	if err := tmp.Sync(); err != nil {
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
