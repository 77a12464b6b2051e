package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/pict/internal/adapters/clock"     //nolint:depguard // Wired in app layer
	"go.trai.ch/pict/internal/adapters/envprep"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pict/internal/adapters/fetch"     //nolint:depguard // Wired in app layer
	"go.trai.ch/pict/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pict/internal/adapters/manifest"  //nolint:depguard // Wired in app layer
	"go.trai.ch/pict/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/pict/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components. This
// struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	Reporter ports.Reporter
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			envprep.NodeID,
			fetch.NodeID,
			telemetry.NodeID,
			logger.NodeID,
			clock.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	manifests, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	preparer, err := graft.Dep[ports.Preparer](ctx)
	if err != nil {
		return nil, err
	}

	fetcher, err := graft.Dep[ports.Fetcher](ctx)
	if err != nil {
		return nil, err
	}

	reporter, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	clk, err := graft.Dep[clockwork.Clock](ctx)
	if err != nil {
		return nil, err
	}

	return New(manifests, preparer, fetcher, reporter, log, clk), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	reporter, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:      application,
		Logger:   log,
		Reporter: reporter,
	}, nil
}
