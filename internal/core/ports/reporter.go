package ports

import "go.trai.ch/pict/internal/core/domain"

// Reporter receives one observability record per asset. It is not on the
// critical path: implementations must absorb their own failures, and the
// scheduler never inspects a reporter outcome.
//
//go:generate go run go.uber.org/mock/mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	Asset(report domain.AssetReport)
	// Close flushes and releases the reporting sink.
	Close() error
}
