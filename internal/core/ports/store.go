package ports

import "go.trai.ch/spell/internal/core/domain"

// JournalStore defines the interface for persisting task run history.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type JournalStore interface {
	// Get returns the recorded runs of a task, most recent last.
	// Returns nil, nil if the task has never run.
	Get(taskName string) ([]domain.RunRecord, error)

	// Put appends a run record.
	Put(rec domain.RunRecord) error
}
