package runner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spell/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/spell/internal/adapters/journal"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/spell/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/spell/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/spell/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/spell/internal/core/ports"
)

// NodeID is the unique identifier for the runner Graft node.
const NodeID graft.ID = "engine.runner"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			fs.StaterNodeID,
			journal.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			stater, err := graft.Dep[ports.FileStater](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.JournalStore](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(executor, stater, store, telemetry, log), nil
		},
	})
}
