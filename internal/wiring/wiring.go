// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pict/internal/adapters/clock"
	_ "go.trai.ch/pict/internal/adapters/envprep"
	_ "go.trai.ch/pict/internal/adapters/fetch"
	_ "go.trai.ch/pict/internal/adapters/logger"
	_ "go.trai.ch/pict/internal/adapters/manifest"
	_ "go.trai.ch/pict/internal/adapters/telemetry"
	// Register the app node.
	_ "go.trai.ch/pict/internal/app"
)
