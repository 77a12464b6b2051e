package fetch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pict/internal/adapters/clock"
	"go.trai.ch/pict/internal/core/ports"

	"github.com/jonboulle/clockwork"
)

// NodeID is the unique identifier for the fetcher Graft node.
const NodeID graft.ID = "adapter.fetcher"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{clock.NodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			clk, err := graft.Dep[clockwork.Clock](ctx)
			if err != nil {
				return nil, err
			}
			return New(clk), nil
		},
	})
}
