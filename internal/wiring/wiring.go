// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/spell/internal/adapters/config"
	_ "go.trai.ch/spell/internal/adapters/fs"
	_ "go.trai.ch/spell/internal/adapters/journal"
	_ "go.trai.ch/spell/internal/adapters/logger"
	_ "go.trai.ch/spell/internal/adapters/shell"
	_ "go.trai.ch/spell/internal/adapters/taskfile"
	_ "go.trai.ch/spell/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/spell/internal/app"
	_ "go.trai.ch/spell/internal/engine/runner"
)
