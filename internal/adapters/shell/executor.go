// Package shell provides the shell executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultShell runs commands when none is configured.
const DefaultShell = "/bin/sh"

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

var _ ports.Executor = (*Executor)(nil)

// Execute runs cmd.Line through "<shell> -c". Output is streamed to stdout and
// stderr and captured into the result at the same time.
//
// The environment is os.Environ() with cmd.Env applied on top.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) (*domain.CommandResult, error) {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	if cmd.Echo {
		_, _ = fmt.Fprintln(stdout, cmd.Line)
	}

	env := resolveEnvironment(os.Environ(), cmd.Env)

	shell := cmd.Shell
	if shell == "" {
		shell = DefaultShell
	}
	executable := shell
	if !filepath.IsAbs(shell) {
		if lp, err := lookPath(shell, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, "-c", cmd.Line) //nolint:gosec // user provided command
	c.Dir = cmd.Dir
	c.Env = env

	var outBuf, errBuf bytes.Buffer
	c.Stdout = io.MultiWriter(&outBuf, stdout)
	c.Stderr = io.MultiWriter(&errBuf, stderr)

	e.logger.Debug("exec: " + cmd.Line)
	runErr := c.Run()

	res := &domain.CommandResult{
		Command: cmd.Line,
		Stdout:  outBuf.String(),
		Stderr:  errBuf.String(),
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return res, zerr.With(domain.Because(domain.ErrCommandStartFailed, runErr), "command", cmd.Line)
		}
		res.ExitCode = exitErr.ExitCode()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, zerr.With(domain.Because(domain.ErrCommandFailed, ctxErr), "command", cmd.Line)
		}
	}

	if res.ExitCode != 0 {
		if cmd.Warn {
			e.logger.Warn("command exited " + strconv.Itoa(res.ExitCode) + ", ignored: " + cmd.Line)
			return res, nil
		}
		err := zerr.With(zerr.Wrap(domain.ErrCommandFailed, cmd.Line), "exit_code", res.ExitCode)
		return res, zerr.With(err, "command", cmd.Line)
	}
	return res, nil
}

// resolveEnvironment applies overrides on top of the system environment.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return sysEnv
	}

	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	order := make([]string, 0, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}
	for k, v := range overrides {
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
