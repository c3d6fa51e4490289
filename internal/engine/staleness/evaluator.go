// Package staleness decides whether a task's outputs need rebuilding.
package staleness

import (
	"fmt"
	"time"

	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports"
)

const (
	// ReasonNoOutputs is reported when a task declares no outputs.
	ReasonNoOutputs = "no declared outputs"
	// ReasonUpToDate is reported when every output is at least as new as every input.
	ReasonUpToDate = "outputs are up to date"
)

// Decision is the outcome of a staleness check.
type Decision struct {
	Run    bool
	Reason string
	// Path is the path that triggered the decision, if any.
	Path string
}

// Evaluator compares modification times of inputs and outputs.
type Evaluator struct {
	stater ports.FileStater
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(stater ports.FileStater) *Evaluator {
	return &Evaluator{stater: stater}
}

// ShouldRun reports whether a task with the given paths must run.
//
// A task runs when it has no outputs, when any output is missing, or when the
// oldest output is strictly older than the newest input. Missing inputs are
// ignored and equal timestamps count as up to date.
func (e *Evaluator) ShouldRun(inputs, outputs []domain.PathDescriptor) (Decision, error) {
	if len(outputs) == 0 {
		return Decision{Run: true, Reason: ReasonNoOutputs}, nil
	}

	var (
		oldest     time.Time
		oldestPath string
	)
	for i, out := range outputs {
		mtime, exists, err := e.stater.ModTime(out.Path)
		if err != nil {
			return Decision{}, err
		}
		if !exists {
			return Decision{Run: true, Reason: fmt.Sprintf("output %s does not exist", out.Path), Path: out.Path}, nil
		}
		if i == 0 || mtime.Before(oldest) {
			oldest, oldestPath = mtime, out.Path
		}
	}

	var (
		newest     time.Time
		newestPath string
	)
	for _, in := range inputs {
		mtime, exists, err := e.stater.ModTime(in.Path)
		if err != nil {
			return Decision{}, err
		}
		if !exists {
			continue
		}
		if newestPath == "" || mtime.After(newest) {
			newest, newestPath = mtime, in.Path
		}
	}

	if newestPath != "" && oldest.Before(newest) {
		return Decision{
			Run:    true,
			Reason: fmt.Sprintf("input %s is newer than output %s", newestPath, oldestPath),
			Path:   newestPath,
		}, nil
	}
	return Decision{Run: false, Reason: ReasonUpToDate}, nil
}
