package journal

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spell/internal/adapters/logger"
	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports"
)

// NodeID is the unique identifier for the journal store Graft node.
const NodeID graft.ID = "adapter.journal_store"

func init() {
	graft.Register(graft.Node[ports.JournalStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.JournalStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return Open(domain.DefaultJournalPath(), log), nil
		},
	})
}
