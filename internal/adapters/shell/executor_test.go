package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spell/internal/adapters/shell"
	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newExecutor(t *testing.T) (*shell.Executor, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return shell.NewExecutor(mockLogger), mockLogger
}

func TestExecutor_Execute_CapturesAndStreams(t *testing.T) {
	executor, _ := newExecutor(t)

	var stdout, stderr bytes.Buffer
	res, err := executor.Execute(context.Background(), domain.Command{
		Line: "echo line1; echo line2; echo oops >&2",
	}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "line1\nline2\n", res.Stdout)
	assert.Equal(t, "oops\n", res.Stderr)
	assert.Equal(t, 0, res.ExitCode)
	assert.True(t, res.OK())
	assert.Equal(t, "line1\nline2\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestExecutor_Execute_Echo(t *testing.T) {
	executor, _ := newExecutor(t)

	var stdout bytes.Buffer
	_, err := executor.Execute(context.Background(), domain.Command{
		Line: "true",
		Echo: true,
	}, &stdout, nil)
	require.NoError(t, err)
	assert.Equal(t, "true\n", stdout.String())
}

func TestExecutor_Execute_NonZeroExit(t *testing.T) {
	executor, _ := newExecutor(t)

	res, err := executor.Execute(context.Background(), domain.Command{Line: "exit 3"}, nil, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrCommandFailed)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.ExitCode)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
	assert.Equal(t, "exit 3", zErr.Metadata()["command"])
}

func TestExecutor_Execute_WarnTolerates(t *testing.T) {
	executor, mockLogger := newExecutor(t)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	res, err := executor.Execute(context.Background(), domain.Command{Line: "exit 1", Warn: true}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)
	assert.False(t, res.OK())
}

func TestExecutor_Execute_EnvironmentVariables(t *testing.T) {
	executor, _ := newExecutor(t)

	res, err := executor.Execute(context.Background(), domain.Command{
		Line: "echo $SPELL_TEST_VAR",
		Env:  map[string]string{"SPELL_TEST_VAR": "test-value-123"},
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "test-value-123", strings.TrimSpace(res.Stdout))
}

func TestExecutor_Execute_WorkingDir(t *testing.T) {
	executor, _ := newExecutor(t)
	tmpDir := t.TempDir()

	_, err := executor.Execute(context.Background(), domain.Command{
		Line: "touch produced",
		Dir:  tmpDir,
	}, nil, nil)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(tmpDir, "produced"))
	require.NoError(t, err)
}

func TestExecutor_Execute_ShellFromPath(t *testing.T) {
	executor, _ := newExecutor(t)

	res, err := executor.Execute(context.Background(), domain.Command{
		Line:  "echo via-path",
		Shell: "sh",
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "via-path\n", res.Stdout)
}

func TestExecutor_Execute_MissingShell(t *testing.T) {
	executor, _ := newExecutor(t)

	_, err := executor.Execute(context.Background(), domain.Command{
		Line:  "true",
		Shell: filepath.Join(t.TempDir(), "no-such-shell"),
	}, nil, nil)
	require.ErrorIs(t, err, domain.ErrCommandStartFailed)
}

func TestExecutor_Execute_Cancelled(t *testing.T) {
	executor, _ := newExecutor(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := executor.Execute(ctx, domain.Command{Line: "sleep 5"}, nil, nil)
	require.Error(t, err)
}
