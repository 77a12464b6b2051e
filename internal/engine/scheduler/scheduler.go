// Package scheduler executes one job per transform spec across a bounded
// worker pool, loading each distinct source exactly once.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/pict/internal/core/domain"
	"go.trai.ch/pict/internal/core/ports"
	"go.trai.ch/pict/internal/engine/runner"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// JobStatus represents the status of a job.
type JobStatus string

const (
	// StatusPending indicates the job is waiting to be executed.
	StatusPending JobStatus = "Pending"
	// StatusRunning indicates the job is currently executing.
	StatusRunning JobStatus = "Running"
	// StatusCompleted indicates the job generated a fresh artifact.
	StatusCompleted JobStatus = "Completed"
	// StatusFailed indicates the job failed.
	StatusFailed JobStatus = "Failed"
	// StatusReused indicates the job reused a valid cache entry.
	StatusReused JobStatus = "Reused"
)

// Scheduler fans the registry's transform specs out as jobs. Failures are
// isolated per job: siblings keep running, and the aggregate error is
// surfaced only after every job has settled.
type Scheduler struct {
	runner   *runner.Runner
	store    ports.CacheStore
	fetcher  ports.Fetcher
	reporter ports.Reporter
	logger   ports.Logger
	clock    clockwork.Clock

	mu        sync.RWMutex
	jobStatus map[string]JobStatus
}

// New creates a Scheduler with the given dependencies.
func New(
	run *runner.Runner,
	store ports.CacheStore,
	fetcher ports.Fetcher,
	reporter ports.Reporter,
	logger ports.Logger,
	clock clockwork.Clock,
) *Scheduler {
	return &Scheduler{
		runner:    run,
		store:     store,
		fetcher:   fetcher,
		reporter:  reporter,
		logger:    logger,
		clock:     clock,
		jobStatus: make(map[string]JobStatus),
	}
}

// Options tune a single Run.
type Options struct {
	// NoCache bypasses cache lookups; entries are still written through.
	NoCache bool
}

// Status returns the status of the job for an output identity.
func (s *Scheduler) Status(output string) JobStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobStatus[output]
}

func (s *Scheduler) updateStatus(output string, status JobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobStatus[output] = status
}

// Run executes one job per registered spec with the environment's
// parallelism bound. It returns an error wrapping
// domain.ErrGenerationFailed if any job failed; artifacts of succeeding
// jobs are left in place either way.
func (s *Scheduler) Run(ctx context.Context, registry *domain.Registry, env *domain.Environment, opts Options) error {
	s.mu.Lock()
	for _, spec := range registry.Specs() {
		s.jobStatus[spec.Output] = StatusPending
	}
	s.mu.Unlock()

	groups := make(map[string]*sourceGroup)
	for id, specs := range registry.BySource() {
		groups[id] = &sourceGroup{
			source:  specs[0].Source,
			root:    env.SourceRoot,
			fetcher: s.fetcher,
		}
	}

	var (
		errMu sync.Mutex
		errs  []error
	)

	parallelism := env.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	// A plain group, not WithContext: one job's failure must not cancel
	// its siblings.
	var pool errgroup.Group
	pool.SetLimit(parallelism)

	for _, spec := range registry.Specs() {
		group := groups[spec.Source.ID]
		pool.Go(func() error {
			if err := s.runJob(ctx, spec, group, env, opts); err != nil {
				s.updateStatus(spec.Output, StatusFailed)
				errMu.Lock()
				errs = append(errs, zerr.With(zerr.Wrap(err, "job failed"), "output", spec.Output))
				errMu.Unlock()
			}
			return nil
		})
	}
	_ = pool.Wait()

	if len(errs) > 0 {
		return errors.Join(append([]error{domain.ErrGenerationFailed}, errs...)...)
	}
	return nil
}

// runJob produces one artifact: cache hit, or load + transform.
func (s *Scheduler) runJob(ctx context.Context, spec domain.TransformSpec, group *sourceGroup, env *domain.Environment, opts Options) error {
	s.updateStatus(spec.Output, StatusRunning)
	start := s.clock.Now()

	if env.CacheEnabled && !opts.NoCache {
		hit, err := s.store.Lookup(spec.Output, spec.Source.Kind)
		if err != nil {
			return err
		}
		if hit != nil {
			if err := s.runner.Emit(spec.Output, hit.Data, env); err != nil {
				return err
			}
			s.updateStatus(spec.Output, StatusReused)
			s.report(domain.AssetReport{
				Output:  spec.Output,
				Result:  domain.Reused{},
				Digest:  contentDigest(hit.Data),
				Elapsed: s.clock.Since(start),
			})
			return nil
		}
	}

	content, err := group.load(ctx)
	if err != nil {
		return err
	}

	artifact, err := s.runner.Generate(ctx, spec, content, env)
	if err != nil {
		return err
	}

	s.updateStatus(spec.Output, StatusCompleted)
	s.report(domain.AssetReport{
		Output: spec.Output,
		Result: domain.Generated{
			SizeBefore: int64(len(content.Data)),
			SizeAfter:  int64(len(artifact)),
		},
		Digest:  contentDigest(artifact),
		Elapsed: s.clock.Since(start),
	})
	return nil
}

// report forwards to the reporter, shielding the build from a panicking
// sink. Reporting is never on the critical path.
func (s *Scheduler) report(rec domain.AssetReport) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn(fmt.Sprintf("reporter failed for %s: %v", rec.Output, r))
		}
	}()
	s.reporter.Asset(rec)
}

func contentDigest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
