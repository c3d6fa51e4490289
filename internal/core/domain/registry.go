package domain

import (
	"fmt"
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// Registry holds the task definitions available to a run. It is populated
// through explicit Register calls and owned by whoever dispatches tasks.
type Registry struct {
	tasks    map[string]*Task
	order    []string
	defaults map[string]any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[string]*Task),
	}
}

// Register adds a task to the registry.
// It returns an error if the name is invalid or already registered, or if the
// task declares a parameter twice.
func (r *Registry) Register(t *Task) error {
	if t == nil || strings.TrimSpace(t.Name) == "" || strings.ContainsAny(t.Name, " \t\n=") {
		name := ""
		if t != nil {
			name = t.Name
		}
		return zerr.With(zerr.Wrap(ErrInvalidTaskName, fmt.Sprintf("%q", name)), "task_name", name)
	}
	if _, exists := r.tasks[t.Name]; exists {
		return zerr.With(zerr.Wrap(ErrTaskAlreadyExists, t.Name), "task_name", t.Name)
	}

	seen := make(map[string]bool, len(t.Params))
	for _, p := range t.Params {
		if seen[p.Name] {
			return zerr.With(zerr.With(zerr.Wrap(ErrDuplicateParameter, t.Name+PathDelimiter+p.Name), "task", t.Name), "param", p.Name)
		}
		seen[p.Name] = true
	}

	r.tasks[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Get returns the task registered under name.
func (r *Registry) Get(name string) (*Task, error) {
	t, ok := r.tasks[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrTaskNotFound, name), "task", name)
	}
	return t, nil
}

// Has reports whether a task is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.tasks[name]
	return ok
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.order)
}

// Tasks yields the registered tasks in registration order.
func (r *Registry) Tasks() iter.Seq[*Task] {
	return func(yield func(*Task) bool) {
		for _, name := range r.order {
			if !yield(r.tasks[name]) {
				return
			}
		}
	}
}

// SetDefaults records collection-level context defaults shipped with the tasks.
func (r *Registry) SetDefaults(defaults map[string]any) {
	r.defaults = defaults
}

// Defaults returns the collection-level context defaults, if any.
func (r *Registry) Defaults() map[string]any {
	return r.defaults
}

// Validate checks that every prerequisite is registered and that the
// prerequisite lists contain no cycles.
func (r *Registry) Validate() error {
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		visited[name] = 1
		path = append(path, name)

		for _, pre := range r.tasks[name].Pre {
			if _, exists := r.tasks[pre]; !exists {
				return zerr.With(zerr.With(zerr.Wrap(ErrMissingDependency, name+" -> "+pre), "task", name), "missing_dependency", pre)
			}
			if visited[pre] == 1 {
				return buildCycleError(path, pre)
			}
			if visited[pre] == 0 {
				if err := visit(pre); err != nil {
					return err
				}
			}
		}

		visited[name] = 2
		path = path[:len(path)-1]
		return nil
	}

	// Registration order keeps error reporting deterministic.
	for _, name := range r.order {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []string, dep string) error {
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	cycle := strings.Join(append(append([]string{}, path[startIdx:]...), dep), " -> ")
	return zerr.With(zerr.Wrap(ErrCycleDetected, cycle), "cycle", cycle)
}
