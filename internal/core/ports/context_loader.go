package ports

import (
	"context"

	"go.trai.ch/spell/internal/core/domain"
)

// ContextLoader merges configuration sources into a context tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=context_loader.go -destination=mocks/mock_context_loader.go -package=mocks
type ContextLoader interface {
	// Load merges sources in the given order, later sources overriding earlier
	// ones key by key. Optional file sources that do not exist are skipped.
	Load(ctx context.Context, sources []domain.Source) (*domain.Node, error)
}
