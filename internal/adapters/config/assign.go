package config

import (
	"strconv"
	"strings"

	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// ParseValue interprets a command-line or environment value as a YAML scalar
// or flow collection. Values that do not parse are kept as plain strings.
func ParseValue(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw
	}
	// A bare "a: b" is almost always meant literally.
	if _, isMap := v.(map[string]any); isMap && !strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return raw
	}
	return v
}

// ParseAssignments converts key=value pairs into a map. Keys keep their dots;
// nesting is resolved by whoever consumes the map.
func ParseAssignments(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidAssignment, strconv.Quote(pair)), "assignment", pair)
		}
		out[key] = ParseValue(value)
	}
	return out, nil
}
