// Package resolver computes the arguments of a task call.
package resolver

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cast"
	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver fills in task parameters. For each declared parameter the first
// source that has a value wins:
//
//  1. explicit override
//  2. value derived from the context by the task's DeriveFunc
//  3. context value at "<task>.<param>"
//  4. context value at "<param>"
//  5. declared default
//
// A parameter with no value from any source is a missing-parameter error.
type Resolver struct{}

// New creates a new Resolver.
func New() *Resolver {
	return &Resolver{}
}

// Resolve computes the arguments of task from node and overrides.
// Overrides naming an undeclared parameter are rejected; derived values for
// undeclared names are ignored. Derive is called at most once.
func (r *Resolver) Resolve(task *domain.Task, node *domain.Node, overrides map[string]any) (domain.Args, error) {
	if node == nil {
		node = domain.NewNode(nil)
	}
	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		if _, ok := task.Param(name); !ok {
			return nil, paramError(domain.ErrUnknownParameter, task.Name, name)
		}
	}

	d := &deriver{task: task, node: node}
	args := make(domain.Args, len(task.Params))
	for _, p := range task.Params {
		value, err := r.lookup(task, p, node, overrides, d)
		if err != nil {
			return nil, err
		}
		shaped, err := shape(task.Name, p, value)
		if err != nil {
			return nil, err
		}
		args[p.Name] = shaped
	}
	return args, nil
}

func (r *Resolver) lookup(task *domain.Task, p domain.Param, node *domain.Node, overrides map[string]any, d *deriver) (any, error) {
	if v, ok := overrides[p.Name]; ok {
		return v, nil
	}

	derived, err := d.values()
	if err != nil {
		return nil, err
	}
	if v, ok := derived[p.Name]; ok {
		return v, nil
	}

	scoped, scopedErr := node.Lookup(task.Name, p.Name)
	if scopedErr == nil {
		return scoped, nil
	}
	global, globalErr := node.LookupDotted(p.Name)
	if globalErr == nil {
		return global, nil
	}

	if p.HasDefault {
		return p.Default, nil
	}

	misses := fmt.Errorf("%w; %w", scopedErr, globalErr)
	missing := zerr.Wrap(domain.Because(domain.ErrMissingParameter, misses), fmt.Sprintf("no value for %q", task.Name+domain.PathDelimiter+p.Name))
	return nil, zerr.With(zerr.With(missing, "task", task.Name), "param", p.Name)
}

// deriver calls a task's DeriveFunc lazily and caches the outcome.
type deriver struct {
	task   *domain.Task
	node   *domain.Node
	done   bool
	result map[string]any
	err    error
}

func (d *deriver) values() (map[string]any, error) {
	if d.done {
		return d.result, d.err
	}
	d.done = true
	if d.task.Derive == nil {
		return nil, nil
	}
	d.result, d.err = d.task.Derive(d.node)
	if d.err != nil {
		d.err = zerr.With(zerr.Wrap(domain.Because(domain.ErrDeriveFailed, d.err), d.task.Name), "task", d.task.Name)
	}
	return d.result, d.err
}

// shape converts a raw value to the parameter's declared form. Path
// parameters become PathDescriptor values, or slices of them for lists.
func shape(task string, p domain.Param, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if !p.IsPath() {
		if p.List && !isList(value) {
			return []any{value}, nil
		}
		return value, nil
	}

	items, isSlice := listItems(value)
	if !isSlice {
		path, err := toPath(task, p, value)
		if err != nil {
			return nil, err
		}
		if p.List {
			return []domain.PathDescriptor{path}, nil
		}
		return path, nil
	}

	if !p.List {
		return nil, zerr.With(paramError(domain.ErrInvalidParameter, task, p.Name), "reason", "list given for a single path")
	}
	paths := make([]domain.PathDescriptor, 0, len(items))
	for _, item := range items {
		path, err := toPath(task, p, item)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func toPath(task string, p domain.Param, value any) (domain.PathDescriptor, error) {
	if pd, ok := value.(domain.PathDescriptor); ok {
		return domain.PathDescriptor{Path: pd.Path, Role: p.Role}, nil
	}
	if isList(value) {
		return domain.PathDescriptor{}, zerr.With(paramError(domain.ErrInvalidParameter, task, p.Name), "reason", "nested list")
	}
	s, err := cast.ToStringE(value)
	if err != nil || s == "" {
		return domain.PathDescriptor{}, zerr.With(paramError(domain.ErrInvalidParameter, task, p.Name), "reason", fmt.Sprintf("%T is not a path", value))
	}
	return domain.PathDescriptor{Path: s, Role: p.Role}, nil
}

func listItems(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []domain.PathDescriptor:
		out := make([]any, len(v))
		for i, pd := range v {
			out[i] = pd
		}
		return out, true
	default:
		return nil, false
	}
}

func isList(value any) bool {
	_, ok := listItems(value)
	return ok
}

func paramError(sentinel error, task, param string) error {
	return zerr.With(zerr.With(zerr.Wrap(sentinel, fmt.Sprintf("%s.%s", task, param)), "task", task), "param", param)
}
