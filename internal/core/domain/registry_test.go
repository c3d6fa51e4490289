package domain_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestRegistry_Register(t *testing.T) {
	r := domain.NewRegistry()
	task := &domain.Task{Name: "task1"}

	if err := r.Register(task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := r.Register(task)
	if err == nil {
		t.Fatal("expected error when registering duplicate task, got nil")
	}
	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	if taskName, ok := zErr.Metadata()["task_name"].(string); !ok || taskName != "task1" {
		t.Errorf("expected metadata task_name=task1, got %v", zErr.Metadata()["task_name"])
	}
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	r := domain.NewRegistry()

	require.ErrorIs(t, r.Register(&domain.Task{Name: ""}), domain.ErrInvalidTaskName)
	require.ErrorIs(t, r.Register(&domain.Task{Name: "has space"}), domain.ErrInvalidTaskName)
	require.ErrorIs(t, r.Register(nil), domain.ErrInvalidTaskName)

	err := r.Register(&domain.Task{
		Name:   "dup",
		Params: []domain.Param{{Name: "x"}, {Name: "x"}},
	})
	require.ErrorIs(t, err, domain.ErrDuplicateParameter)
}

func TestRegistry_GetAndOrder(t *testing.T) {
	r := domain.NewRegistry()
	require.NoError(t, r.Register(&domain.Task{Name: "b"}))
	require.NoError(t, r.Register(&domain.Task{Name: "a"}))

	got, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)

	_, err = r.Get("missing")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	var names []string
	for task := range r.Tasks() {
		names = append(names, task.Name)
	}
	assert.Equal(t, []string{"b", "a"}, names)
	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Has("b"))
}

func TestRegistry_Validate_Cycle(t *testing.T) {
	r := domain.NewRegistry()
	require.NoError(t, r.Register(&domain.Task{Name: "A", Pre: []string{"B"}}))
	require.NoError(t, r.Register(&domain.Task{Name: "B", Pre: []string{"A"}}))

	err := r.Validate()
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	assert.Equal(t, "A -> B -> A", zErr.Metadata()["cycle"])
}

func TestRegistry_Validate_MissingDependency(t *testing.T) {
	r := domain.NewRegistry()
	require.NoError(t, r.Register(&domain.Task{Name: "link", Pre: []string{"compile"}}))

	err := r.Validate()
	require.ErrorIs(t, err, domain.ErrMissingDependency)
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "compile", zErr.Metadata()["missing_dependency"])
}

func TestRegistry_Validate_Diamond(t *testing.T) {
	r := domain.NewRegistry()
	require.NoError(t, r.Register(&domain.Task{Name: "A", Pre: []string{"B", "C"}}))
	require.NoError(t, r.Register(&domain.Task{Name: "B", Pre: []string{"D"}}))
	require.NoError(t, r.Register(&domain.Task{Name: "C", Pre: []string{"D"}}))
	require.NoError(t, r.Register(&domain.Task{Name: "D"}))

	require.NoError(t, r.Validate())
}

func TestRegistry_Defaults(t *testing.T) {
	r := domain.NewRegistry()
	assert.Nil(t, r.Defaults())

	r.SetDefaults(map[string]any{"cfiles": []any{"a.c"}})
	assert.True(t, slices.Equal([]string{"cfiles"}, domain.NewNode(r.Defaults()).Keys()))
}
