package telemetry

import (
	"go.trai.ch/pict/internal/core/domain"
	"go.trai.ch/pict/internal/core/ports"
)

var _ ports.Reporter = Noop{}

// Noop is a reporter that discards everything. Used for quiet runs and
// as a safe default in tests.
type Noop struct{}

// Asset discards the report.
func (Noop) Asset(domain.AssetReport) {}

// Close does nothing.
func (Noop) Close() error { return nil }
