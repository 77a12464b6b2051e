// Package app implements the application layer for pict.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/pict/internal/adapters/cache"
	"go.trai.ch/pict/internal/core/ports"
	"go.trai.ch/pict/internal/engine/runner"
	"go.trai.ch/pict/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App wires a build together: manifest -> environment -> scheduler. The
// per-build pieces (cache store, runner, scheduler) are constructed here
// because they depend on the prepared environment.
type App struct {
	manifests ports.ManifestLoader
	preparer  ports.Preparer
	fetcher   ports.Fetcher
	reporter  ports.Reporter
	logger    ports.Logger
	clock     clockwork.Clock
}

// New creates a new App instance.
func New(
	manifests ports.ManifestLoader,
	preparer ports.Preparer,
	fetcher ports.Fetcher,
	reporter ports.Reporter,
	logger ports.Logger,
	clock clockwork.Clock,
) *App {
	return &App{
		manifests: manifests,
		preparer:  preparer,
		fetcher:   fetcher,
		reporter:  reporter,
		logger:    logger,
		clock:     clock,
	}
}

// RunOptions tune a single generation run.
type RunOptions struct {
	// NoCache bypasses cache lookups; entries are still written through.
	NoCache bool
}

// Run generates every asset declared in the manifest.
func (a *App) Run(ctx context.Context, manifestPath string, opts RunOptions) error {
	registry, cfg, err := a.manifests.Load(manifestPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}
	if registry.Len() == 0 {
		a.logger.Info("no assets declared, nothing to do")
		return nil
	}

	env, transformer, err := a.preparer.Prepare(cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to prepare build environment")
	}

	store := cache.NewStore(env.CacheDir, a.clock)
	run := runner.New(transformer, store, a.logger)
	sched := scheduler.New(run, store, a.fetcher, a.reporter, a.logger, a.clock)

	if err := sched.Run(ctx, registry, env, scheduler.Options{NoCache: opts.NoCache}); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("%d assets up to date", registry.Len()))
	return nil
}

// CleanOptions select what Clean removes.
type CleanOptions struct {
	// Outputs also removes the generated artifacts named by the manifest.
	Outputs bool
}

// Clean removes cache entries and, optionally, generated outputs.
func (a *App) Clean(_ context.Context, manifestPath string, opts CleanOptions) error {
	registry, cfg, err := a.manifests.Load(manifestPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	env, _, err := a.preparer.Prepare(cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to prepare build environment")
	}

	store := cache.NewStore(env.CacheDir, a.clock)
	if err := store.Purge(); err != nil {
		return zerr.Wrap(err, "failed to purge cache")
	}

	if opts.Outputs {
		for _, spec := range registry.Specs() {
			if err := os.Remove(env.OutputPath(spec.Output)); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return zerr.With(zerr.Wrap(err, "failed to remove output"), "output", spec.Output)
			}
		}
	}
	return nil
}
