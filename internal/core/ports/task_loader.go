package ports

import "go.trai.ch/spell/internal/core/domain"

// TaskLoader defines the interface for loading task definitions.
//
//go:generate go run go.uber.org/mock/mockgen -source=task_loader.go -destination=mocks/mock_task_loader.go -package=mocks
type TaskLoader interface {
	// Load reads the taskfile at path and returns a validated registry.
	Load(path string) (*domain.Registry, error)
}
