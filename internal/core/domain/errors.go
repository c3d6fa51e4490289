package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrTaskAlreadyExists is returned when attempting to register a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrInvalidTaskName is returned when a task name is empty or contains invalid characters.
	ErrInvalidTaskName = zerr.New("invalid task name")

	// ErrMissingDependency is returned when a task lists a prerequisite that is not registered.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the prerequisite lists form a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not registered.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrDuplicateParameter is returned when a task declares the same parameter twice.
	ErrDuplicateParameter = zerr.New("duplicate parameter")

	// ErrNoTargetsSpecified is returned when no targets are specified for the run command.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrNotFound is returned when a context lookup misses.
	ErrNotFound = zerr.New("config key not found")

	// ErrNotAMapping is returned when a nested lookup traverses a value that is not a mapping.
	ErrNotAMapping = zerr.New("config value is not a mapping")

	// ErrConfigDecodeFailed is returned when a context subtree cannot be decoded into a typed value.
	ErrConfigDecodeFailed = zerr.New("failed to decode config value")

	// ErrMissingParameter is returned when a parameter has no override, context value or default.
	ErrMissingParameter = zerr.New("missing parameter")

	// ErrUnknownParameter is returned when an explicit override names a parameter the task does not declare.
	ErrUnknownParameter = zerr.New("unknown parameter")

	// ErrInvalidParameter is returned when a resolved value does not fit the parameter's declared shape.
	ErrInvalidParameter = zerr.New("invalid parameter value")

	// ErrDeriveFailed is returned when a task's derive function fails.
	ErrDeriveFailed = zerr.New("failed to derive parameters")

	// ErrTaskExecutionFailed is returned when a task body fails.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrPrerequisiteFailed is returned when a prerequisite of a task fails.
	ErrPrerequisiteFailed = zerr.New("prerequisite failed")

	// ErrCommandFailed is returned when a command exits non-zero and failures are not tolerated.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCommandStartFailed is returned when a command cannot be started at all.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrPathStatFailed is returned when stating a declared path fails for a reason other than absence.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrConfigLoadFailed is returned when a present configuration source cannot be read or parsed.
	ErrConfigLoadFailed = zerr.New("failed to load config source")

	// ErrInvalidAssignment is returned when a command-line assignment is not of the form key=value.
	ErrInvalidAssignment = zerr.New("invalid assignment, expected key=value")

	// ErrConfigNotFound is returned when a required configuration file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrTaskfileReadFailed is returned when the taskfile cannot be read.
	ErrTaskfileReadFailed = zerr.New("failed to read taskfile")

	// ErrTaskfileParseFailed is returned when the taskfile cannot be parsed.
	ErrTaskfileParseFailed = zerr.New("failed to parse taskfile")

	// ErrInvalidPathRole is returned when a taskfile parameter declares an unknown path role.
	ErrInvalidPathRole = zerr.New("invalid path role, expected 'input' or 'output'")

	// ErrTemplateFailed is returned when a command or derive template cannot be parsed or rendered.
	ErrTemplateFailed = zerr.New("failed to render template")

	// ErrJournalReadFailed is returned when the run journal cannot be read.
	ErrJournalReadFailed = zerr.New("failed to read run journal")

	// ErrJournalWriteFailed is returned when the run journal cannot be written.
	ErrJournalWriteFailed = zerr.New("failed to write run journal")

	// ErrRunFailed is returned when a run aborts because one of its tasks failed.
	ErrRunFailed = zerr.New("run failed")
)

// Because attaches cause beneath sentinel. The result reads "<sentinel>: <cause>"
// and matches both the sentinel and the cause with errors.Is.
func Because(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
