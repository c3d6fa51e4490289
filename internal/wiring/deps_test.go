package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spell/internal/core/ports"
	"go.trai.ch/spell/internal/engine/runner"
	_ "go.trai.ch/spell/internal/wiring"
)

// TestGraftDependencies resolves the nodes the CLI relies on from the
// registered graph. graft.AssertDepsValid cannot be used here because it
// infers dependency IDs from the package of the type passed to Dep[T], and
// every port lives in the same package.
func TestGraftDependencies(t *testing.T) {
	t.Chdir(t.TempDir())
	ctx := context.Background()

	resolve := func(t *testing.T, fn func(context.Context) (any, error)) {
		t.Helper()
		v, err := fn(ctx)
		require.NoError(t, err)
		require.NotNil(t, v)
	}

	t.Run("task loader", func(t *testing.T) {
		resolve(t, func(ctx context.Context) (any, error) {
			v, _, err := graft.ExecuteFor[ports.TaskLoader](ctx)
			return v, err
		})
	})
	t.Run("context loader", func(t *testing.T) {
		resolve(t, func(ctx context.Context) (any, error) {
			v, _, err := graft.ExecuteFor[ports.ContextLoader](ctx)
			return v, err
		})
	})
	t.Run("runner", func(t *testing.T) {
		resolve(t, func(ctx context.Context) (any, error) {
			v, _, err := graft.ExecuteFor[*runner.Runner](ctx)
			return v, err
		})
	})
}
