package domain

import (
	"context"
	"io"
)

// Param is a declared task parameter.
type Param struct {
	Name       string
	Help       string
	Default    any
	HasDefault bool
	// Role marks the parameter as an input or output path. Path parameters are
	// resolved into PathDescriptor values (or slices of them when List is set).
	Role PathRole
	List bool
}

// IsPath reports whether the parameter carries filesystem paths.
func (p Param) IsPath() bool {
	return p.Role != RoleNone
}

// DeriveFunc computes extra parameter values from the context. It is called
// once per resolution and must not have side effects.
type DeriveFunc func(ctx *Node) (map[string]any, error)

// Body is the work a task performs once it has been decided that it must run.
type Body func(ctx context.Context, inv Invocation) error

// Task is a named, parameterized unit of work with an ordered prerequisite list.
type Task struct {
	Name   string
	Help   string
	Params []Param
	Pre    []string
	Derive DeriveFunc
	Body   Body
}

// Param returns the declared parameter with the given name.
func (t *Task) Param(name string) (Param, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Invocation is the view a running task body has of its call.
type Invocation interface {
	// TaskName returns the name of the running task.
	TaskName() string
	// Args returns the resolved arguments.
	Args() Args
	// Context returns the merged context tree.
	Context() *Node
	// Run executes a shell command line and records it on the task's result.
	Run(ctx context.Context, line string, opts ...CommandOption) (*CommandResult, error)
	// Stdout returns the writer text emitted by the task should go to.
	Stdout() io.Writer
	// Printf writes formatted text to Stdout and captures it on the result.
	Printf(format string, args ...any)
}

// Command is a single shell command a task asks to run.
type Command struct {
	Line  string
	Dir   string
	Env   map[string]string
	Shell string
	// Echo prints the command line to stdout before running it.
	Echo bool
	// Warn tolerates a non-zero exit code instead of failing.
	Warn bool
}

// CommandOption adjusts a Command before it runs.
type CommandOption func(*Command)

// WithWarn tolerates a non-zero exit code for this command.
func WithWarn() CommandOption {
	return func(c *Command) { c.Warn = true }
}

// WithEcho forces echoing on or off for this command.
func WithEcho(echo bool) CommandOption {
	return func(c *Command) { c.Echo = echo }
}

// WithDir runs the command in dir.
func WithDir(dir string) CommandOption {
	return func(c *Command) { c.Dir = dir }
}

// WithEnv adds environment variables for this command.
func WithEnv(env map[string]string) CommandOption {
	return func(c *Command) {
		if c.Env == nil {
			c.Env = make(map[string]string, len(env))
		}
		for k, v := range env {
			c.Env[k] = v
		}
	}
}

// CommandResult captures what a command produced.
type CommandResult struct {
	Command  string
	Stdout   string
	Stderr   string
	ExitCode int
}

// OK reports whether the command exited zero.
func (r *CommandResult) OK() bool {
	return r.ExitCode == 0
}
