package domain

import "sync"

// InvocationRecord tracks which tasks have been dispatched during one run so
// each task executes at most once, however many prerequisite chains reach it.
type InvocationRecord struct {
	runID string

	mu       sync.Mutex
	entries  map[string]*Result
	finished []string
}

// NewInvocationRecord creates an empty record for the run identified by runID.
func NewInvocationRecord(runID string) *InvocationRecord {
	return &InvocationRecord{
		runID:   runID,
		entries: make(map[string]*Result),
	}
}

// RunID returns the identifier of the run this record belongs to.
func (r *InvocationRecord) RunID() string {
	return r.runID
}

// Begin atomically checks and marks a task as pending. When the task was
// already reached in this run, it returns a copy of the existing entry and
// false; the caller must not dispatch it again.
func (r *InvocationRecord) Begin(name string) (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[name]; ok {
		return *existing, false
	}
	r.entries[name] = &Result{Task: name, Status: StatusPending}
	return Result{}, true
}

// Advance moves a task that is still in flight to a non-terminal status.
func (r *InvocationRecord) Advance(name string, status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries[name]; ok && !entry.Status.IsTerminal() {
		entry.Status = status
	}
}

// Finish stores the terminal result of a task.
func (r *InvocationRecord) Finish(res *Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *res
	r.entries[res.Task] = &stored
	r.finished = append(r.finished, res.Task)
}

// Status returns the current status of a task, or pending if it was never reached.
func (r *InvocationRecord) Status(name string) Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries[name]; ok {
		return entry.Status
	}
	return StatusPending
}

// Results returns the terminal results in the order tasks finished.
func (r *InvocationRecord) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Result, 0, len(r.finished))
	for _, name := range r.finished {
		out = append(out, *r.entries[name])
	}
	return out
}
