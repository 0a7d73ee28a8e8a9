package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrEventExists      = errors.New("event already exists")
	ErrEventNotFound    = errors.New("event not found")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrReportNotReady   = errors.New("report not ready")
)
