package taskfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spell/internal/adapters/logger"
	"go.trai.ch/spell/internal/core/ports"
)

// NodeID is the unique identifier for the taskfile loader Graft node.
const NodeID graft.ID = "adapter.task_loader"

func init() {
	graft.Register(graft.Node[ports.TaskLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.TaskLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
