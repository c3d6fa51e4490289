package domain

import "time"

// RunRecord is the persisted summary of one task dispatch.
type RunRecord struct {
	TaskName   string    `json:"task_name,omitzero"`
	RunID      string    `json:"run_id,omitzero"`
	Status     Status    `json:"status,omitzero"`
	Reason     string    `json:"reason,omitzero"`
	ArgsDigest string    `json:"args_digest,omitzero"`
	Commands   int       `json:"commands,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}

// NewRunRecord summarizes a result for the journal.
func NewRunRecord(runID string, res *Result, args Args) RunRecord {
	rec := RunRecord{
		TaskName:  res.Task,
		RunID:     runID,
		Status:    res.Status,
		Reason:    res.Reason,
		Commands:  len(res.Commands),
		Timestamp: res.Started,
	}
	if args != nil {
		rec.ArgsDigest = args.Digest()
	}
	return rec
}
