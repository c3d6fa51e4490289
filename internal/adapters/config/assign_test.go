package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spell/internal/adapters/config"
	"go.trai.ch/spell/internal/core/domain"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"ws/a.c", "ws/a.c"},
		{"[a.c, b.c]", []any{"a.c", "b.c"}},
		{"true", true},
		{"5", 5},
		{"", ""},
		{"key: value", "key: value"},
		{"{key: value}", map[string]any{"key": "value"}},
		{"null", "null"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, config.ParseValue(tt.raw))
		})
	}
}

func TestParseAssignments(t *testing.T) {
	got, err := config.ParseAssignments([]string{"link.objectfiles=[a.o]", "name=x=y"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"link.objectfiles": []any{"a.o"},
		"name":             "x=y",
	}, got)

	_, err = config.ParseAssignments([]string{"novalue"})
	require.ErrorIs(t, err, domain.ErrInvalidAssignment)

	_, err = config.ParseAssignments([]string{"=value"})
	require.ErrorIs(t, err, domain.ErrInvalidAssignment)
}
