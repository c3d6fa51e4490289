package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spell/internal/adapters/telemetry"
	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports"
)

func TestNoOp_Record(t *testing.T) {
	tel := telemetry.NewNoOp()

	ctx, vertex := tel.Record(context.Background(), "link", ports.WithInputs("mycompile"))
	require.NotNil(t, vertex)

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, vertex, fromCtx)

	n, err := vertex.Stdout().Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	vertex.Log(domain.LogLevelInfo, "msg")
	vertex.Cached()
	vertex.Complete(errors.New("boom"))
	require.NoError(t, tel.Close())
}
