package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cast"
)

// Args maps parameter names to their resolved values.
type Args map[string]any

// Value returns the raw value of a parameter.
func (a Args) Value(name string) (any, bool) {
	v, ok := a[name]
	return v, ok
}

// String returns the parameter converted to a string, or "" when absent or not convertible.
func (a Args) String(name string) string {
	s, _ := cast.ToStringE(a[name])
	return s
}

// Strings returns the parameter as a string slice. Path lists yield their paths.
func (a Args) Strings(name string) []string {
	switch v := a[name].(type) {
	case nil:
		return nil
	case []PathDescriptor:
		out := make([]string, len(v))
		for i, p := range v {
			out[i] = p.Path
		}
		return out
	case PathDescriptor:
		return []string{v.Path}
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = cast.ToString(item)
		}
		return out
	default:
		s, err := cast.ToStringSliceE(v)
		if err != nil {
			return nil
		}
		return s
	}
}

// Bool returns the parameter as a bool.
func (a Args) Bool(name string) bool {
	return cast.ToBool(a[name])
}

// Int returns the parameter as an int.
func (a Args) Int(name string) int {
	return cast.ToInt(a[name])
}

// Path returns a scalar path parameter.
func (a Args) Path(name string) (PathDescriptor, bool) {
	p, ok := a[name].(PathDescriptor)
	return p, ok
}

// Paths returns the path descriptors held by a parameter, whether scalar or list.
func (a Args) Paths(name string) []PathDescriptor {
	switch v := a[name].(type) {
	case PathDescriptor:
		return []PathDescriptor{v}
	case []PathDescriptor:
		return v
	default:
		return nil
	}
}

// Partition splits the path parameters of task into inputs and outputs, in
// declaration order.
func (a Args) Partition(task *Task) (inputs, outputs []PathDescriptor) {
	for _, p := range task.Params {
		switch p.Role {
		case RoleInput:
			inputs = append(inputs, a.Paths(p.Name)...)
		case RoleOutput:
			outputs = append(outputs, a.Paths(p.Name)...)
		case RoleNone:
		}
	}
	return inputs, outputs
}

// Digest returns a stable xxhash digest of the arguments, independent of map order.
func (a Args) Digest() string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteString("=")
		_, _ = fmt.Fprintf(&b, "%v", a[name])
		b.WriteString(";")
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(b.String()))
}
