// Package runner dispatches tasks: prerequisites first, then parameter
// resolution, the staleness check and finally the task body.
package runner

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports"
	"go.trai.ch/spell/internal/engine/resolver"
	"go.trai.ch/spell/internal/engine/staleness"
	"go.trai.ch/zerr"
)

// ReasonForced is reported when the staleness check was bypassed.
const ReasonForced = "forced"

// RunSettings are the command defaults read from the "run" context key.
type RunSettings struct {
	Echo  bool   `mapstructure:"echo"`
	Warn  bool   `mapstructure:"warn"`
	Shell string `mapstructure:"shell"`
}

// Options configures a Session.
type Options struct {
	// Force runs every reached task regardless of staleness.
	Force bool
	// Overrides are qualified "<task>.<param>" values applied however a task is reached.
	Overrides map[string]any
	Stdout    io.Writer
	Stderr    io.Writer
	// RunID identifies the run in the journal. A random one is generated when empty.
	RunID string
}

// Session is the scope of one run. Every task is dispatched at most once per Session.
type Session struct {
	registry  *domain.Registry
	node      *domain.Node
	record    *domain.InvocationRecord
	settings  RunSettings
	overrides map[string]map[string]any
	force     bool
	stdout    io.Writer
	stderr    io.Writer
}

// NewSession validates the registry and prepares a run over it.
func NewSession(reg *domain.Registry, node *domain.Node, opts Options) (*Session, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	if node == nil {
		node = domain.NewNode(nil)
	}

	var settings RunSettings
	if node.Has("run") {
		if err := node.Decode("run", &settings); err != nil {
			return nil, err
		}
	}

	overrides, err := splitOverrides(reg, opts.Overrides)
	if err != nil {
		return nil, err
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	return &Session{
		registry:  reg,
		node:      node,
		record:    domain.NewInvocationRecord(runID),
		settings:  settings,
		overrides: overrides,
		force:     opts.Force,
		stdout:    stdout,
		stderr:    stderr,
	}, nil
}

// RunID returns the identifier of the run.
func (s *Session) RunID() string {
	return s.record.RunID()
}

// Settings returns the command defaults of the run.
func (s *Session) Settings() RunSettings {
	return s.settings
}

// Results returns the terminal results in the order tasks finished.
func (s *Session) Results() []domain.Result {
	return s.record.Results()
}

// Status returns the current status of a task in this run.
func (s *Session) Status(name string) domain.Status {
	return s.record.Status(name)
}

// splitOverrides turns "<task>.<param>" keys into per-task override maps.
func splitOverrides(reg *domain.Registry, qualified map[string]any) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any)
	for _, key := range slices.Sorted(maps.Keys(qualified)) {
		i := strings.LastIndex(key, domain.PathDelimiter)
		if i <= 0 || i == len(key)-1 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidAssignment, key), "key", key)
		}
		taskName, param := key[:i], key[i+1:]
		task, err := reg.Get(taskName)
		if err != nil {
			return nil, err
		}
		if _, ok := task.Param(param); !ok {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrUnknownParameter, key), "task", taskName), "param", param)
		}
		if out[taskName] == nil {
			out[taskName] = make(map[string]any)
		}
		out[taskName][param] = qualified[key]
	}
	return out, nil
}

// Runner dispatches tasks within a Session.
type Runner struct {
	resolver  *resolver.Resolver
	evaluator *staleness.Evaluator
	executor  ports.Executor
	journal   ports.JournalStore
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new Runner.
func New(
	executor ports.Executor,
	stater ports.FileStater,
	journal ports.JournalStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Runner {
	return &Runner{
		resolver:  resolver.New(),
		evaluator: staleness.NewEvaluator(stater),
		executor:  executor,
		journal:   journal,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Run invokes targets in order and stops at the first failure. Unqualified
// args go to every target that declares a parameter of that name; an arg no
// target declares is rejected before anything runs.
func (r *Runner) Run(ctx context.Context, s *Session, targets []string, args map[string]any) ([]domain.Result, error) {
	if len(targets) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}

	perTarget := make(map[string]map[string]any, len(targets))
	claimed := make(map[string]bool, len(args))
	for _, target := range targets {
		task, err := s.registry.Get(target)
		if err != nil {
			return nil, err
		}
		for name, value := range args {
			if _, ok := task.Param(name); !ok {
				continue
			}
			if perTarget[target] == nil {
				perTarget[target] = make(map[string]any)
			}
			perTarget[target][name] = value
			claimed[name] = true
		}
	}
	for _, name := range slices.Sorted(maps.Keys(args)) {
		if !claimed[name] {
			return nil, zerr.With(zerr.Wrap(domain.ErrUnknownParameter, name), "param", name)
		}
	}

	for _, target := range targets {
		if _, err := r.Invoke(ctx, s, target, perTarget[target]); err != nil {
			return s.Results(), zerr.With(domain.Because(domain.ErrRunFailed, err), "task", target)
		}
	}
	return s.Results(), nil
}

// Invoke dispatches the named task. overrides are unqualified parameter
// values that take precedence over the session's qualified overrides.
//
// A task already dispatched in this session is not run again: its recorded
// result is returned instead. Reaching a task that is still in progress is a
// cycle.
func (r *Runner) Invoke(ctx context.Context, s *Session, name string, overrides map[string]any) (*domain.Result, error) {
	task, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}

	prev, fresh := s.record.Begin(name)
	if !fresh {
		if !prev.Status.IsTerminal() {
			return nil, zerr.With(zerr.Wrap(domain.ErrCycleDetected, name), "task", name)
		}
		r.logger.Debug(fmt.Sprintf("%s: already %s in this run", name, prev.Status))
		return &prev, prev.Err
	}

	res := &domain.Result{Task: name, Status: domain.StatusPending, Started: time.Now()}
	ctx, vertex := r.telemetry.Record(ctx, name, ports.WithInputs(task.Pre...))

	args, err := r.dispatch(ctx, s, task, overrides, res, vertex)
	res.Duration = time.Since(res.Started)
	if err != nil {
		res.Status = domain.StatusFailed
		res.Err = err
		vertex.Log(domain.LogLevelError, err.Error())
	}
	vertex.Complete(err)
	s.record.Finish(res)

	if putErr := r.journal.Put(domain.NewRunRecord(s.RunID(), res, args)); putErr != nil {
		r.logger.Warn(fmt.Sprintf("%s: could not record run: %v", name, putErr))
	}

	switch res.Status {
	case domain.StatusSkipped:
		r.logger.Info(fmt.Sprintf("%s: skipped, %s", name, res.Reason))
	case domain.StatusSucceeded:
		r.logger.Debug(fmt.Sprintf("%s: done in %s", name, res.Duration.Round(time.Millisecond)))
	default:
	}
	return res, err
}

func (r *Runner) dispatch(
	ctx context.Context,
	s *Session,
	task *domain.Task,
	overrides map[string]any,
	res *domain.Result,
	vertex ports.Vertex,
) (domain.Args, error) {
	for _, pre := range task.Pre {
		if _, err := r.Invoke(ctx, s, pre, nil); err != nil {
			return nil, zerr.With(
				zerr.With(zerr.Wrap(domain.Because(domain.ErrPrerequisiteFailed, err), task.Name), "task", task.Name),
				"prerequisite", pre,
			)
		}
	}

	s.record.Advance(task.Name, domain.StatusEvaluating)
	args, err := r.resolver.Resolve(task, s.node, mergeOverrides(s.overrides[task.Name], overrides))
	if err != nil {
		return nil, err
	}

	if s.force {
		res.Reason = ReasonForced
	} else {
		inputs, outputs := args.Partition(task)
		decision, err := r.evaluator.ShouldRun(inputs, outputs)
		if err != nil {
			return args, err
		}
		res.Reason = decision.Reason
		if !decision.Run {
			res.Status = domain.StatusSkipped
			vertex.Cached()
			return args, nil
		}
	}

	s.record.Advance(task.Name, domain.StatusRunning)
	vertex.Log(domain.LogLevelDebug, "running: "+res.Reason)

	if task.Body != nil {
		inv := newInvocation(r.executor, s, task, args, res, vertex)
		err := task.Body(ctx, inv)
		res.Output = inv.output.String()
		if err != nil {
			return args, zerr.With(zerr.Wrap(domain.Because(domain.ErrTaskExecutionFailed, err), task.Name), "task", task.Name)
		}
	}
	res.Status = domain.StatusSucceeded
	return args, nil
}

func mergeOverrides(scoped, explicit map[string]any) map[string]any {
	if len(scoped) == 0 {
		return explicit
	}
	merged := maps.Clone(scoped)
	maps.Copy(merged, explicit)
	return merged
}
