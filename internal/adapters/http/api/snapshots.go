package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/alliancelab/warboard/internal/domain/model"
)

// SnapshotsHandler handles snapshot import requests.
type SnapshotsHandler struct {
	deps Dependencies
}

// NewSnapshotsHandler creates a new snapshots handler.
func NewSnapshotsHandler(deps Dependencies) *SnapshotsHandler {
	return &SnapshotsHandler{deps: deps}
}

type snapshotRequest struct {
	TakenAt string               `json:"taken_at"`
	Members []model.MemberRecord `json:"members"`
}

func (s snapshotRequest) validate() (time.Time, error) {
	if s.TakenAt == "" {
		return time.Time{}, errors.New("missing taken_at")
	}
	takenAt, err := time.Parse(time.RFC3339, s.TakenAt)
	if err != nil {
		return time.Time{}, errors.New("invalid taken_at; must be RFC3339")
	}
	if len(s.Members) == 0 {
		return time.Time{}, errors.New("missing members")
	}
	seen := make(map[string]struct{}, len(s.Members))
	for _, m := range s.Members {
		if m.MemberID == "" {
			return time.Time{}, errors.New("member with empty member_id")
		}
		if _, dup := seen[m.MemberID]; dup {
			return time.Time{}, errors.New("duplicate member_id: " + m.MemberID)
		}
		seen[m.MemberID] = struct{}{}
	}
	return takenAt, nil
}

// HandleImport handles POST /snapshots requests.
func (h *SnapshotsHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	takenAt, err := req.validate()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	snap, err := h.deps.ImportSnapshot(r.Context(), takenAt, req.Members)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}
