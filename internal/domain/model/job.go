package model

// ProcessJob asks the worker pool to diff a snapshot pair and assemble the
// event's report. RequestID is the idempotency key supplied by the caller.
type ProcessJob struct {
	RequestID        string
	EventID          string
	BeforeSnapshotID string
	AfterSnapshotID  string
}
