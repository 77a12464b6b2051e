package envprep

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pict/internal/adapters/logger"
	"go.trai.ch/pict/internal/core/ports"
)

// NodeID is the unique identifier for the preparer Graft node.
const NodeID graft.ID = "adapter.preparer"

func init() {
	graft.Register(graft.Node[ports.Preparer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Preparer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
