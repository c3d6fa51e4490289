package ports

import (
	"context"
	"io"

	"go.trai.ch/spell/internal/core/domain"
)

// Executor defines the interface for running shell commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs cmd, streaming its output to stdout and stderr while also
	// capturing it into the returned result.
	//
	// A non-zero exit code is an error unless cmd.Warn is set, in which case
	// the result is returned with a nil error.
	Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) (*domain.CommandResult, error)
}
