// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/pict/internal/core/domain"
)

// Transformer is the pluggable transform capability. It is resolved once
// during environment preparation and threaded into the runner; the core
// never looks it up ambiently.
//
//go:generate go run go.uber.org/mock/mockgen -source=transformer.go -destination=mocks/mock_transformer.go -package=mocks
type Transformer interface {
	// Transform produces the derived artifact bytes for one spec. A
	// failure (unsupported format, bad options) is opaque to the core
	// and fatal for that job.
	Transform(ctx context.Context, src []byte, opts domain.Options, cfg domain.ImageConfig) ([]byte, error)
}
