package domain

import "path/filepath"

// SourceKind identifies one layer of the configuration hierarchy.
type SourceKind string

const (
	// SourceDefaults holds the built-in defaults.
	SourceDefaults SourceKind = "defaults"
	// SourceCollection holds defaults shipped with the taskfile.
	SourceCollection SourceKind = "collection"
	// SourceSystem is the system-wide config file.
	SourceSystem SourceKind = "system"
	// SourceUser is the per-user config file.
	SourceUser SourceKind = "user"
	// SourceProject is the per-project config file.
	SourceProject SourceKind = "project"
	// SourceEnv is the process environment.
	SourceEnv SourceKind = "env"
	// SourceRuntime is a config file named explicitly on the command line.
	SourceRuntime SourceKind = "runtime"
	// SourceOverrides holds key=value overrides from the command line.
	SourceOverrides SourceKind = "overrides"
)

// Source describes one configuration layer.
//
// File-backed kinds use Location: an exact path when Exact is set, otherwise a
// prefix that is tried with each of ConfigExtensions. SourceEnv uses Location
// as the variable prefix. SourceDefaults, SourceCollection and SourceOverrides
// carry their data in Values, where keys may be dotted paths.
type Source struct {
	Kind     SourceKind
	Location string
	Exact    bool
	Optional bool
	Values   map[string]any
}

// SourceOptions carries the environment-specific inputs of StandardSources.
type SourceOptions struct {
	SystemPrefix string
	HomeDir      string
	ProjectDir   string
	RuntimeFile  string
	Collection   map[string]any
	Overrides    map[string]any
}

// BuiltinDefaults returns the lowest-precedence context values.
func BuiltinDefaults() map[string]any {
	return map[string]any{
		"run": map[string]any{
			"echo":  false,
			"warn":  false,
			"shell": "/bin/sh",
		},
	}
}

// StandardSources returns the configuration hierarchy in precedence order,
// lowest first: defaults, collection, system, user, project, env, runtime, overrides.
// Layers whose inputs are empty are left out.
func StandardSources(opts SourceOptions) []Source {
	sources := []Source{{Kind: SourceDefaults, Values: BuiltinDefaults()}}

	if len(opts.Collection) > 0 {
		sources = append(sources, Source{Kind: SourceCollection, Values: opts.Collection})
	}

	systemPrefix := opts.SystemPrefix
	if systemPrefix == "" {
		systemPrefix = SystemConfigPrefix
	}
	sources = append(sources, Source{Kind: SourceSystem, Location: systemPrefix, Optional: true})

	if opts.HomeDir != "" {
		sources = append(sources, Source{
			Kind:     SourceUser,
			Location: filepath.Join(opts.HomeDir, UserConfigBaseName),
			Optional: true,
		})
	}
	if opts.ProjectDir != "" {
		sources = append(sources, Source{
			Kind:     SourceProject,
			Location: filepath.Join(opts.ProjectDir, ConfigBaseName),
			Optional: true,
		})
	}

	sources = append(sources, Source{Kind: SourceEnv, Location: EnvPrefix})

	if opts.RuntimeFile != "" {
		sources = append(sources, Source{Kind: SourceRuntime, Location: opts.RuntimeFile, Exact: true})
	}
	if len(opts.Overrides) > 0 {
		sources = append(sources, Source{Kind: SourceOverrides, Values: opts.Overrides})
	}
	return sources
}
