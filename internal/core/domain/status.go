package domain

import (
	"strings"
	"time"
)

// Status represents where a task is in its lifecycle within one run.
//
//	Pending -> Evaluating -> Skipped
//	                      -> Running -> Succeeded | Failed
type Status string

const (
	// StatusPending indicates the task was reached and is waiting on its prerequisites.
	StatusPending Status = "pending"
	// StatusEvaluating indicates parameters are being resolved and staleness checked.
	StatusEvaluating Status = "evaluating"
	// StatusRunning indicates the task body is executing.
	StatusRunning Status = "running"
	// StatusSucceeded indicates the task body completed without error.
	StatusSucceeded Status = "succeeded"
	// StatusFailed indicates the task or one of its prerequisites failed.
	StatusFailed Status = "failed"
	// StatusSkipped indicates the task's outputs were already up to date.
	StatusSkipped Status = "skipped"
)

// IsTerminal checks if a status is a terminal state (Succeeded, Failed, Skipped).
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusSkipped:
		return true
	default:
		return false
	}
}

// NormalizeStatus converts a string to a Status, defaulting to pending if unknown.
// This is useful for deserialization of journal records.
func NormalizeStatus(s string) Status {
	switch Status(strings.ToLower(s)) {
	case StatusEvaluating:
		return StatusEvaluating
	case StatusRunning:
		return StatusRunning
	case StatusSucceeded:
		return StatusSucceeded
	case StatusFailed:
		return StatusFailed
	case StatusSkipped:
		return StatusSkipped
	default:
		return StatusPending
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Result is the outcome of dispatching one task in a run.
type Result struct {
	Task     string
	Status   Status
	Reason   string
	Commands []CommandResult
	Output   string
	Err      error
	Started  time.Time
	Duration time.Duration
}

// CommandLines returns the command lines the task ran, in order.
func (r *Result) CommandLines() []string {
	lines := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		lines[i] = c.Command
	}
	return lines
}
