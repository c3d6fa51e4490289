package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestNode_LookupNested(t *testing.T) {
	node := domain.NewNode(map[string]any{
		"a": map[string]any{"b": 5},
	})

	got, err := node.LookupDotted("a.b")
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	got, err = node.Lookup("a", "b")
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestNode_LookupReportsPartialPath(t *testing.T) {
	node := domain.NewNode(map[string]any{
		"a": map[string]any{"b": 5},
	})

	_, err := node.LookupDotted("a.c")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorContains(t, err, `"a.c"`)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "a.c", zErr.Metadata()["path"])
	assert.Equal(t, []string{"b"}, zErr.Metadata()["valid_keys"])
}

func TestNode_LookupThroughScalar(t *testing.T) {
	node := domain.NewNode(map[string]any{"a": 1})

	_, err := node.Lookup("a", "b", "c")
	require.Error(t, err)
	require.ErrorContains(t, err, `"a.b"`)
}

func TestNode_Get(t *testing.T) {
	node := domain.NewNode(map[string]any{"name": "spell"})

	got, err := node.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "spell", got)

	_, err = node.Get("missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNode_IsolatedFromInput(t *testing.T) {
	input := map[string]any{"list": []any{"x"}, "m": map[string]any{"k": "v"}}
	node := domain.NewNode(input)

	input["m"].(map[string]any)["k"] = "changed"
	input["list"].([]any)[0] = "changed"

	got, err := node.LookupDotted("m.k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	got, err = node.Get("list")
	require.NoError(t, err)
	assert.Equal(t, []any{"x"}, got)
}

func TestNode_NormalizesAnyKeys(t *testing.T) {
	node := domain.NewNode(map[string]any{
		"outer": map[any]any{"inner": true},
	})

	got, err := node.LookupDotted("outer.inner")
	require.NoError(t, err)
	assert.Equal(t, true, got)
}

func TestNode_Sub(t *testing.T) {
	node := domain.NewNode(map[string]any{
		"link": map[string]any{"objectfiles": []any{"a.o"}},
		"flat": "x",
	})

	sub, err := node.Sub("link")
	require.NoError(t, err)
	assert.Equal(t, []string{"objectfiles"}, sub.Keys())

	_, err = node.Sub("flat")
	require.ErrorIs(t, err, domain.ErrNotAMapping)
}

func TestNode_Decode(t *testing.T) {
	node := domain.NewNode(map[string]any{
		"run": map[string]any{"echo": "true", "shell": "/bin/bash"},
	})

	var settings struct {
		Echo  bool   `mapstructure:"echo"`
		Shell string `mapstructure:"shell"`
	}
	require.NoError(t, node.Decode("run", &settings))
	assert.True(t, settings.Echo)
	assert.Equal(t, "/bin/bash", settings.Shell)

	err := node.Decode("missing", &settings)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNode_HasAndKeys(t *testing.T) {
	node := domain.NewNode(map[string]any{"b": 1, "a": map[string]any{"c": 2}})

	assert.True(t, node.Has("a.c"))
	assert.False(t, node.Has("a.d"))
	assert.Equal(t, []string{"a", "b"}, node.Keys())
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, domain.SplitPath("a..b."))
	assert.Empty(t, domain.SplitPath(""))
}
