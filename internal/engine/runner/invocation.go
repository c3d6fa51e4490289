package runner

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports"
)

// invocation is the domain.Invocation handed to a task body.
type invocation struct {
	executor ports.Executor
	session  *Session
	task     *domain.Task
	args     domain.Args
	res      *domain.Result
	stdout   io.Writer
	stderr   io.Writer
	output   strings.Builder
}

var _ domain.Invocation = (*invocation)(nil)

func newInvocation(
	executor ports.Executor,
	s *Session,
	task *domain.Task,
	args domain.Args,
	res *domain.Result,
	vertex ports.Vertex,
) *invocation {
	return &invocation{
		executor: executor,
		session:  s,
		task:     task,
		args:     args,
		res:      res,
		stdout:   io.MultiWriter(s.stdout, vertex.Stdout()),
		stderr:   io.MultiWriter(s.stderr, vertex.Stderr()),
	}
}

func (i *invocation) TaskName() string {
	return i.task.Name
}

func (i *invocation) Args() domain.Args {
	return i.args
}

func (i *invocation) Context() *domain.Node {
	return i.session.node
}

func (i *invocation) Stdout() io.Writer {
	return i.stdout
}

// Run builds the command from the run settings, applies opts and executes it.
// The result is recorded even when the command fails.
func (i *invocation) Run(ctx context.Context, line string, opts ...domain.CommandOption) (*domain.CommandResult, error) {
	cmd := domain.Command{
		Line:  line,
		Shell: i.session.settings.Shell,
		Echo:  i.session.settings.Echo,
		Warn:  i.session.settings.Warn,
	}
	for _, opt := range opts {
		opt(&cmd)
	}

	res, err := i.executor.Execute(ctx, cmd, i.stdout, i.stderr)
	if res != nil {
		i.res.Commands = append(i.res.Commands, *res)
	}
	return res, err
}

func (i *invocation) Printf(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	i.output.WriteString(text)
	_, _ = io.WriteString(i.stdout, text)
}
