package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spell/internal/adapters/logger"
	"go.trai.ch/spell/internal/core/ports"
)

// NodeID is the unique identifier for the context loader Graft node.
const NodeID graft.ID = "adapter.context_loader"

func init() {
	graft.Register(graft.Node[ports.ContextLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ContextLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
