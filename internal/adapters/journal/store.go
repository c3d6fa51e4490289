// Package journal persists the run history of tasks.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.JournalStore using a flat JSON file.
type Store struct {
	path   string
	limit  int
	logger ports.Logger
	mu     sync.Mutex
	loaded bool
	cache  map[string][]domain.RunRecord
}

// NewStore creates a JournalStore backed by the file at the given path and
// reads it immediately. Each task keeps at most domain.JournalHistoryLimit records.
func NewStore(path string) (*Store, error) {
	s := newStore(path, nil)
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open creates a JournalStore that reads the file at path on first use.
// An unreadable journal is logged and treated as empty; the next Put
// replaces it.
func Open(path string, logger ports.Logger) *Store {
	return newStore(path, logger)
}

func newStore(path string, logger ports.Logger) *Store {
	return &Store{
		path:   filepath.Clean(path),
		limit:  domain.JournalHistoryLimit,
		logger: logger,
		cache:  make(map[string][]domain.RunRecord),
	}
}

var _ ports.JournalStore = (*Store)(nil)

// SetRoot points the store at the journal of the project in dir.
func (s *Store) SetRoot(dir string) {
	path := filepath.Clean(filepath.Join(dir, domain.DefaultJournalPath()))

	s.mu.Lock()
	defer s.mu.Unlock()
	if path == s.path {
		return
	}
	s.path = path
	s.loaded = false
	s.cache = make(map[string][]domain.RunRecord)
}

// Path returns the location of the journal file.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// ensureLoaded reads the journal once. The caller must hold s.mu.
func (s *Store) ensureLoaded() {
	if s.loaded {
		return
	}
	if err := s.load(); err != nil {
		s.cache = make(map[string][]domain.RunRecord)
		s.loaded = true
		if s.logger != nil {
			s.logger.Warn(fmt.Sprintf("ignoring unreadable run journal: %v", err))
		}
	}
}

// load reads the journal file. The caller must hold s.mu or own s exclusively.
func (s *Store) load() error {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.loaded = true
			return nil
		}
		return zerr.With(domain.Because(domain.ErrJournalReadFailed, err), "path", s.path)
	}

	s.loaded = true
	if len(data) == 0 {
		return nil
	}

	records := make(map[string][]domain.RunRecord)
	if err := json.Unmarshal(data, &records); err != nil {
		return zerr.With(domain.Because(domain.ErrJournalReadFailed, err), "path", s.path)
	}
	for task, list := range records {
		for i := range list {
			list[i].Status = domain.NormalizeStatus(string(list[i].Status))
		}
		records[task] = list
	}
	s.cache = records
	return nil
}

// save writes the journal atomically. The caller must hold s.mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return domain.Because(domain.ErrJournalWriteFailed, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(domain.Because(domain.ErrJournalWriteFailed, err), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return zerr.With(domain.Because(domain.ErrJournalWriteFailed, err), "path", s.path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(domain.Because(domain.ErrJournalWriteFailed, err), "path", s.path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(domain.Because(domain.ErrJournalWriteFailed, err), "path", s.path)
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.With(domain.Because(domain.ErrJournalWriteFailed, err), "path", s.path)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.With(domain.Because(domain.ErrJournalWriteFailed, err), "path", s.path)
	}
	return nil
}

// Get returns the recorded runs of a task, oldest first.
func (s *Store) Get(taskName string) ([]domain.RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	records, ok := s.cache[taskName]
	if !ok {
		return nil, nil
	}
	out := make([]domain.RunRecord, len(records))
	copy(out, records)
	return out, nil
}

// Put appends a run record, dropping the oldest ones beyond the limit.
func (s *Store) Put(rec domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	records := append(s.cache[rec.TaskName], rec)
	if len(records) > s.limit {
		records = records[len(records)-s.limit:]
	}
	s.cache[rec.TaskName] = records

	return s.save()
}
