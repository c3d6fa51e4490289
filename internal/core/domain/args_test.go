package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/spell/internal/core/domain"
)

func TestArgs_Accessors(t *testing.T) {
	args := domain.Args{
		"name":    "spell",
		"count":   "3",
		"dry_run": "true",
		"list":    []any{"a", 2},
		"exe":     domain.OutputPath("bin/app"),
		"objs":    []domain.PathDescriptor{domain.InputPath("a.o"), domain.InputPath("b.o")},
	}

	assert.Equal(t, "spell", args.String("name"))
	assert.Equal(t, 3, args.Int("count"))
	assert.True(t, args.Bool("dry_run"))
	assert.Equal(t, []string{"a", "2"}, args.Strings("list"))
	assert.Equal(t, "bin/app", args.String("exe"))
	assert.Equal(t, []string{"a.o", "b.o"}, args.Strings("objs"))
	assert.Equal(t, []string{"bin/app"}, args.Strings("exe"))
	assert.Nil(t, args.Strings("missing"))

	p, ok := args.Path("exe")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleOutput, p.Role)
	assert.Len(t, args.Paths("objs"), 2)
	assert.Len(t, args.Paths("exe"), 1)
	assert.Nil(t, args.Paths("name"))
}

func TestArgs_Partition(t *testing.T) {
	task := &domain.Task{
		Name: "link",
		Params: []domain.Param{
			{Name: "objectfiles", Role: domain.RoleInput, List: true},
			{Name: "executable_path", Role: domain.RoleOutput},
			{Name: "flags"},
		},
	}
	args := domain.Args{
		"objectfiles":     []domain.PathDescriptor{domain.InputPath("a.o"), domain.InputPath("b.o")},
		"executable_path": domain.OutputPath("app"),
		"flags":           "-O2",
	}

	inputs, outputs := args.Partition(task)
	assert.Equal(t, []domain.PathDescriptor{domain.InputPath("a.o"), domain.InputPath("b.o")}, inputs)
	assert.Equal(t, []domain.PathDescriptor{domain.OutputPath("app")}, outputs)
}

func TestArgs_DigestIsOrderIndependent(t *testing.T) {
	a := domain.Args{"x": 1, "y": []any{"a", "b"}}
	b := domain.Args{"y": []any{"a", "b"}, "x": 1}
	c := domain.Args{"x": 2, "y": []any{"a", "b"}}

	assert.Equal(t, a.Digest(), b.Digest())
	assert.NotEqual(t, a.Digest(), c.Digest())
	assert.Len(t, a.Digest(), 16)
}

func TestPathRole(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want domain.PathRole
		ok   bool
	}{
		{"", domain.RoleNone, true},
		{"input", domain.RoleInput, true},
		{"out", domain.RoleOutput, true},
		{"sideways", domain.RoleNone, false},
	} {
		got, ok := domain.ParsePathRole(tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
	}
	assert.Equal(t, "output", domain.RoleOutput.String())
	assert.Equal(t, "a.c", domain.InputPath("a.c").String())
}
