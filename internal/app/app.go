// Package app implements the application layer for spell.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"go.trai.ch/spell/internal/adapters/config" //nolint:depguard // Assignment parsing is shared with the env provider
	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports"
	"go.trai.ch/spell/internal/engine/runner"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// App represents the main application logic.
type App struct {
	tasks     ports.TaskLoader
	contexts  ports.ContextLoader
	runner    *runner.Runner
	journal   ports.JournalStore
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	tasks ports.TaskLoader,
	contexts ports.ContextLoader,
	run *runner.Runner,
	journal ports.JournalStore,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		tasks:     tasks,
		contexts:  contexts,
		runner:    run,
		journal:   journal,
		telemetry: telemetry,
		logger:    log,
	}
}

// Options are the settings shared by every command.
type Options struct {
	// Taskfile is the path of the taskfile. Defaults to spellfile.yaml.
	Taskfile string
	// ConfigFile is an extra config file merged above the project config.
	ConfigFile string
	// Set holds key=value context overrides.
	Set    []string
	Stdout io.Writer
	Stderr io.Writer
}

func (o Options) taskfile() string {
	if o.Taskfile == "" {
		return domain.TaskfileName
	}
	return o.Taskfile
}

func (o Options) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}
	return o.Stderr
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	Options
	// Args holds key=value parameter values. Keys of the form "<task>.<param>"
	// apply wherever that task is reached; bare keys go to the requested
	// targets that declare them.
	Args  []string
	Force bool
}

type verboser interface {
	SetVerbose(verbose bool)
}

type rooter interface {
	SetRoot(dir string)
}

// SetVerbose enables debug logging when the logger supports it.
func (a *App) SetVerbose(verbose bool) {
	if l, ok := a.logger.(verboser); ok {
		l.SetVerbose(verbose)
	}
}

// Run executes the specified targets and their prerequisites.
func (a *App) Run(ctx context.Context, targetNames []string, opts RunOptions) error {
	if len(targetNames) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	reg, node, err := a.load(ctx, opts.Options)
	if err != nil {
		return err
	}

	args, err := config.ParseAssignments(opts.Args)
	if err != nil {
		return err
	}
	qualified, bare := splitArgs(reg, args)

	session, err := runner.NewSession(reg, node, runner.Options{
		Force:     opts.Force,
		Overrides: qualified,
		Stdout:    opts.stdout(),
		Stderr:    opts.stderr(),
	})
	if err != nil {
		return err
	}
	a.logger.Debug("run " + session.RunID())

	defer func() {
		if err := a.telemetry.Close(); err != nil {
			a.logger.Warn(fmt.Sprintf("closing telemetry: %v", err))
		}
	}()

	results, err := a.runner.Run(ctx, session, targetNames, bare)
	a.logger.Info(summarize(results))
	return err
}

// splitArgs separates "<task>.<param>" keys from bare parameter names.
func splitArgs(reg *domain.Registry, args map[string]any) (qualified, bare map[string]any) {
	qualified = make(map[string]any)
	bare = make(map[string]any)
	for key, value := range args {
		if i := strings.LastIndex(key, domain.PathDelimiter); i > 0 && reg.Has(key[:i]) {
			qualified[key] = value
			continue
		}
		bare[key] = value
	}
	return qualified, bare
}

func summarize(results []domain.Result) string {
	counts := make(map[domain.Status]int)
	for _, res := range results {
		counts[res.Status]++
	}
	return fmt.Sprintf("%d tasks: %d ran, %d skipped, %d failed",
		len(results),
		counts[domain.StatusSucceeded],
		counts[domain.StatusSkipped],
		counts[domain.StatusFailed],
	)
}

// List prints the tasks of the taskfile with their parameters.
func (a *App) List(_ context.Context, opts Options) error {
	reg, err := a.tasks.Load(opts.taskfile())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(opts.stdout(), 0, 0, 2, ' ', 0)
	for task := range reg.Tasks() {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", task.Name, task.Help)
		for _, p := range task.Params {
			_, _ = fmt.Fprintf(w, "  --%s\t%s\n", p.Name, describeParam(p))
		}
		if len(task.Pre) > 0 {
			_, _ = fmt.Fprintf(w, "  pre\t%s\n", strings.Join(task.Pre, ", "))
		}
	}
	return w.Flush()
}

func describeParam(p domain.Param) string {
	var parts []string
	if p.IsPath() {
		parts = append(parts, p.Role.String())
	}
	if p.List {
		parts = append(parts, "list")
	}
	if p.HasDefault {
		parts = append(parts, fmt.Sprintf("default %v", p.Default))
	}
	desc := strings.Join(parts, ", ")
	if p.Help != "" {
		if desc != "" {
			return p.Help + " (" + desc + ")"
		}
		return p.Help
	}
	return desc
}

// Config prints the merged context, or the value at a dotted path, as YAML.
func (a *App) Config(ctx context.Context, path string, opts Options) error {
	_, node, err := a.load(ctx, opts)
	if err != nil {
		return err
	}

	var value any = node.Map()
	if path != "" {
		if value, err = node.LookupDotted(path); err != nil {
			return err
		}
	}

	enc := yaml.NewEncoder(opts.stdout())
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return zerr.Wrap(err, "failed to encode config")
	}
	return enc.Close()
}

// useProject points the journal at the project that owns the taskfile.
func (a *App) useProject(opts Options) {
	if j, ok := a.journal.(rooter); ok {
		j.SetRoot(filepath.Dir(opts.taskfile()))
	}
}

// History prints the journal of one task, or of every task in the taskfile.
func (a *App) History(_ context.Context, taskName string, opts Options) error {
	a.useProject(opts)

	var names []string
	if taskName != "" {
		names = []string{taskName}
	} else {
		reg, err := a.tasks.Load(opts.taskfile())
		if err != nil {
			return err
		}
		for task := range reg.Tasks() {
			names = append(names, task.Name)
		}
	}

	w := tabwriter.NewWriter(opts.stdout(), 0, 0, 2, ' ', 0)
	for _, name := range names {
		records, err := a.journal.Get(name)
		if err != nil {
			return err
		}
		for _, rec := range records {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				rec.Timestamp.Local().Format(time.DateTime),
				shortID(rec.RunID),
				rec.TaskName,
				rec.Status,
				rec.Reason,
			)
		}
	}
	return w.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// load reads the taskfile and merges the context sources around it.
func (a *App) load(ctx context.Context, opts Options) (*domain.Registry, *domain.Node, error) {
	path := opts.taskfile()
	reg, err := a.tasks.Load(path)
	if err != nil {
		return nil, nil, err
	}
	a.useProject(opts)

	overrides, err := config.ParseAssignments(opts.Set)
	if err != nil {
		return nil, nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		a.logger.Debug("no home directory, skipping user config")
		home = ""
	}

	sources := domain.StandardSources(domain.SourceOptions{
		HomeDir:     home,
		ProjectDir:  filepath.Dir(path),
		RuntimeFile: opts.ConfigFile,
		Collection:  reg.Defaults(),
		Overrides:   overrides,
	})
	a.logger.Debug(fmt.Sprintf("context sources: %s", strings.Join(sourceKinds(sources), ", ")))

	node, err := a.contexts.Load(ctx, sources)
	if err != nil {
		return nil, nil, err
	}
	return reg, node, nil
}

func sourceKinds(sources []domain.Source) []string {
	kinds := make([]string, len(sources))
	for i, src := range sources {
		kinds[i] = string(src.Kind)
	}
	return kinds
}
