package model

import "time"

// MemberRecord is one member's cumulative counters inside a snapshot.
type MemberRecord struct {
	MemberID     string `json:"member_id"`
	Name         string `json:"name"`
	Group        string `json:"group,omitempty"` // empty means ungrouped
	Merit        int64  `json:"merit"`
	Contribution int64  `json:"contribution"`
	Assist       int64  `json:"assist"`
	Donation     int64  `json:"donation"`
	Power        int64  `json:"power"`
}

// Snapshot is a point-in-time capture of every member's counters, imported
// by the out-of-scope ingestion layer.
type Snapshot struct {
	ID      string         `json:"id"`
	TakenAt time.Time      `json:"taken_at"`
	Members []MemberRecord `json:"members"`
}
