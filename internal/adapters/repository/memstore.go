package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/alliancelab/warboard/internal/domain/model"
	"github.com/alliancelab/warboard/internal/domain/report"
	"github.com/alliancelab/warboard/pkg/metrics"
)

// MemoryStore is an in-memory Store implementation guarded by one RWMutex.
// Reads return copies so callers can never mutate stored state; assembled
// reports are shared as immutable values by contract.
type MemoryStore struct {
	mu        sync.RWMutex
	events    map[string]model.Event
	snapshots map[string]model.Snapshot
	deltas    map[string][]model.MemberEventDelta
	reports   map[string]*report.EventReport
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events:    make(map[string]model.Event),
		snapshots: make(map[string]model.Snapshot),
		deltas:    make(map[string][]model.MemberEventDelta),
		reports:   make(map[string]*report.EventReport),
	}
}

func (s *MemoryStore) CreateEvent(_ context.Context, ev model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[ev.ID]; ok {
		return ErrEventExists
	}
	s.events[ev.ID] = ev
	metrics.UpdateEventsTracked(len(s.events))
	return nil
}

func (s *MemoryStore) Event(_ context.Context, id string) (model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[id]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	return ev, nil
}

func (s *MemoryStore) Events(_ context.Context) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *MemoryStore) SetEventWindow(_ context.Context, id, beforeID, afterID string, start, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok {
		return ErrEventNotFound
	}
	ev.BeforeSnapshotID = beforeID
	ev.AfterSnapshotID = afterID
	ev.EventStart = start
	ev.EventEnd = end
	s.events[id] = ev
	return nil
}

func (s *MemoryStore) SetEventStatus(_ context.Context, id string, status model.EventStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok {
		return ErrEventNotFound
	}
	ev.Status = status
	s.events[id] = ev
	return nil
}

func (s *MemoryStore) PutSnapshot(_ context.Context, snap model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := make([]model.MemberRecord, len(snap.Members))
	copy(members, snap.Members)
	snap.Members = members
	s.snapshots[snap.ID] = snap
	return nil
}

func (s *MemoryStore) Snapshot(_ context.Context, id string) (model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[id]
	if !ok {
		return model.Snapshot{}, ErrSnapshotNotFound
	}
	members := make([]model.MemberRecord, len(snap.Members))
	copy(members, snap.Members)
	snap.Members = members
	return snap, nil
}

func (s *MemoryStore) PutReport(_ context.Context, eventID string, deltas []model.MemberEventDelta, rep *report.EventReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[eventID]; !ok {
		return ErrEventNotFound
	}
	stored := make([]model.MemberEventDelta, len(deltas))
	copy(stored, deltas)
	s.deltas[eventID] = stored
	s.reports[eventID] = rep
	metrics.UpdateReportsStored(len(s.reports))
	return nil
}

func (s *MemoryStore) Report(_ context.Context, eventID string) (*report.EventReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.events[eventID]; !ok {
		return nil, ErrEventNotFound
	}
	rep, ok := s.reports[eventID]
	if !ok {
		return nil, ErrReportNotReady
	}
	return rep, nil
}

func (s *MemoryStore) Deltas(_ context.Context, eventID string) ([]model.MemberEventDelta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.deltas[eventID]
	if !ok {
		return nil, ErrReportNotReady
	}
	out := make([]model.MemberEventDelta, len(stored))
	copy(out, stored)
	return out, nil
}

func (s *MemoryStore) Counts(_ context.Context) (events, reports int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events), len(s.reports)
}
