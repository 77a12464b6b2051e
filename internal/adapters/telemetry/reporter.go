// Package telemetry provides the Progrock implementation of the asset
// reporter.
package telemetry

import (
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/pict/internal/core/domain"
	"go.trai.ch/pict/internal/core/ports"
)

var _ ports.Reporter = (*Reporter)(nil)

// Reporter implements ports.Reporter on a progrock recorder: one vertex
// per asset, marked cached for reused artifacts.
type Reporter struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Reporter with a default tape.
func New() *Reporter {
	return NewReporter(progrock.NewTape())
}

// NewReporter creates a Reporter with the given writer.
func NewReporter(w progrock.Writer) *Reporter {
	return &Reporter{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Asset records one job outcome. Reporting is off the critical path;
// nothing here can fail the build.
func (r *Reporter) Asset(report domain.AssetReport) {
	d := digest.FromString(report.Output)
	v := r.rec.Vertex(d, report.Output)

	switch res := report.Result.(type) {
	case domain.Reused:
		v.Cached()
	case domain.Generated:
		_, _ = fmt.Fprintf(v.Stdout(), "generated %d -> %d bytes (xxh64 %s) in %s\n",
			res.SizeBefore, res.SizeAfter, report.Digest, report.Elapsed)
	}
	v.Done(nil)
}

// Close flushes and closes the recording session.
func (r *Reporter) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
