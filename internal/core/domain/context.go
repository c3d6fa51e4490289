package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"go.trai.ch/zerr"
)

// PathDelimiter separates the segments of a dotted context path.
const PathDelimiter = "."

// Node is the merged, layered context tree available to every task during a run.
// It wraps a nested mapping whose values are scalars, lists or further mappings.
// A Node is immutable once built.
type Node struct {
	values map[string]any
}

// NewNode builds a Node from a nested mapping. The mapping is deep-copied and
// normalized so later mutations of the argument are not observed.
func NewNode(values map[string]any) *Node {
	if values == nil {
		return &Node{values: map[string]any{}}
	}
	normalized, _ := normalize(values).(map[string]any)
	return &Node{values: normalized}
}

// Get returns the value stored directly under key.
func (n *Node) Get(key string) (any, error) {
	return n.Lookup(key)
}

// Lookup walks the tree one segment at a time. A miss reports the partial path
// up to and including the first missing segment.
func (n *Node) Lookup(path ...string) (any, error) {
	if len(path) == 0 {
		return n.Map(), nil
	}

	var current any = n.values
	for i, segment := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, notFound(path[:i+1], nil)
		}
		value, exists := m[segment]
		if !exists {
			return nil, notFound(path[:i+1], sortedKeys(m))
		}
		current = value
	}
	return current, nil
}

// LookupDotted is Lookup with the path given as a single dotted string ("a.b.c").
func (n *Node) LookupDotted(path string) (any, error) {
	return n.Lookup(SplitPath(path)...)
}

// Has reports whether a value exists at the dotted path.
func (n *Node) Has(path string) bool {
	_, err := n.LookupDotted(path)
	return err == nil
}

// Sub returns the mapping at the dotted path as its own Node.
func (n *Node) Sub(path string) (*Node, error) {
	value, err := n.LookupDotted(path)
	if err != nil {
		return nil, err
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrNotAMapping, fmt.Sprintf("value at %q is %T", path, value)), "path", path)
	}
	return NewNode(m), nil
}

// Keys returns the top-level keys in sorted order.
func (n *Node) Keys() []string {
	return sortedKeys(n.values)
}

// Map returns a deep copy of the underlying mapping.
func (n *Node) Map() map[string]any {
	copied, _ := normalize(n.values).(map[string]any)
	return copied
}

// Decode decodes the value at the dotted path into out using weakly typed
// mapstructure decoding. An empty path decodes the whole tree.
func (n *Node) Decode(path string, out any) error {
	var input any = n.values
	if path != "" {
		value, err := n.LookupDotted(path)
		if err != nil {
			return err
		}
		input = value
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Because(ErrConfigDecodeFailed, err)
	}
	if err := decoder.Decode(input); err != nil {
		return zerr.With(Because(ErrConfigDecodeFailed, err), "path", path)
	}
	return nil
}

// SplitPath splits a dotted path into its segments. Empty segments are dropped.
func SplitPath(path string) []string {
	parts := strings.Split(path, PathDelimiter)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

func notFound(segments []string, validKeys []string) error {
	path := strings.Join(segments, PathDelimiter)
	err := zerr.With(zerr.Wrap(ErrNotFound, fmt.Sprintf("no value at %q", path)), "path", path)
	if validKeys != nil {
		err = zerr.With(err, "valid_keys", validKeys)
	}
	return err
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

// normalize deep-copies v, converting map[any]any keys to strings.
func normalize(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, val := range typed {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, val := range typed {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
