package domain

// PathRole tags a task parameter as a filesystem input or output.
type PathRole int

const (
	// RoleNone marks a parameter that is not a path.
	RoleNone PathRole = iota
	// RoleInput marks a path the task reads.
	RoleInput
	// RoleOutput marks a path the task produces.
	RoleOutput
)

// String returns the lowercase name of the role.
func (r PathRole) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	default:
		return "none"
	}
}

// ParsePathRole converts a taskfile role name into a PathRole.
func ParsePathRole(s string) (PathRole, bool) {
	switch s {
	case "", "none":
		return RoleNone, true
	case "input", "in":
		return RoleInput, true
	case "output", "out":
		return RoleOutput, true
	default:
		return RoleNone, false
	}
}

// PathDescriptor is a filesystem path declared as an input or output of a task.
type PathDescriptor struct {
	Path string
	Role PathRole
}

// InputPath returns an input descriptor for path.
func InputPath(path string) PathDescriptor {
	return PathDescriptor{Path: path, Role: RoleInput}
}

// OutputPath returns an output descriptor for path.
func OutputPath(path string) PathDescriptor {
	return PathDescriptor{Path: path, Role: RoleOutput}
}

// String returns the path, so descriptors render naturally in commands and templates.
func (p PathDescriptor) String() string {
	return p.Path
}
