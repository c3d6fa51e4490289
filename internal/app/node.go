package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spell/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/spell/internal/adapters/journal"            //nolint:depguard // Wired in app layer
	"go.trai.ch/spell/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/spell/internal/adapters/taskfile"           //nolint:depguard // Wired in app layer
	"go.trai.ch/spell/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/spell/internal/core/ports"
	"go.trai.ch/spell/internal/engine/runner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			taskfile.NodeID,
			config.NodeID,
			runner.NodeID,
			journal.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	tasks, err := graft.Dep[ports.TaskLoader](ctx)
	if err != nil {
		return nil, err
	}

	contexts, err := graft.Dep[ports.ContextLoader](ctx)
	if err != nil {
		return nil, err
	}

	run, err := graft.Dep[*runner.Runner](ctx)
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

	return New(tasks, contexts, run, store, telemetry, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}
