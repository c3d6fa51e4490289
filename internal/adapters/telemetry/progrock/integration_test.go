package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spell/internal/adapters/telemetry/progrock"
	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
}

func TestRecorder_Integration(t *testing.T) {
	recorder := progrock.New()

	ctx, compile := recorder.Record(context.Background(), "mycompile")
	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, compile, fromCtx)

	_, err := compile.Stdout().Write([]byte("gcc -c ws/a.c -o ws/a.o\n"))
	require.NoError(t, err)
	compile.Log(domain.LogLevelDebug, "debug msg")
	compile.Cached()
	compile.Complete(nil)

	_, link := recorder.Record(context.Background(), "link", ports.WithInputs("mycompile"))
	link.Log(domain.LogLevelError, "failed")
	link.Complete(errors.New("link failed"))

	require.NoError(t, recorder.Close())
}
