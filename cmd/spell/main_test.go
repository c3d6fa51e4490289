package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/spell/internal/adapters/logger"
	"go.trai.ch/spell/internal/adapters/telemetry"
	"go.trai.ch/spell/internal/app"
	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports/mocks"
	"go.trai.ch/spell/internal/engine/runner"
	"go.uber.org/mock/gomock"
)

func newProvider(t *testing.T) (ComponentProvider, *mocks.MockTaskLoader) {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := logger.New()
	log.SetOutput(io.Discard)

	tasks := mocks.NewMockTaskLoader(ctrl)
	journal := mocks.NewMockJournalStore(ctrl)
	r := runner.New(mocks.NewMockExecutor(ctrl), mocks.NewMockFileStater(ctrl), journal, telemetry.NewNoOp(), log)
	application := app.New(tasks, mocks.NewMockContextLoader(ctrl), r, journal, telemetry.NewNoOp(), log)

	return func(_ context.Context) (*app.Components, error) {
		return app.NewComponents(application, log), nil
	}, tasks
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	provider, _ := newProvider(t)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "spell version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and reports the error when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	provider, tasks := newProvider(t)
	tasks.EXPECT().Load("missing.yaml").Return(nil, domain.ErrTaskfileReadFailed)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"list", "-f", "missing.yaml"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), domain.ErrTaskfileReadFailed.Error())
}

// TestRun_ListVerbose verifies that the verbose shorthand works on subcommands.
func TestRun_ListVerbose(t *testing.T) {
	provider, tasks := newProvider(t)
	tasks.EXPECT().Load(domain.TaskfileName).Return(domain.NewRegistry(), nil)

	exitCode := run(context.Background(), []string{"list", "-v"}, new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
}
