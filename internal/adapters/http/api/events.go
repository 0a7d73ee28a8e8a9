package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/alliancelab/warboard/internal/domain/model"
)

// EventsHandler handles event lifecycle requests.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

type createEventRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (c createEventRequest) validate() error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return errors.New("missing name")
	case strings.TrimSpace(c.Category) == "":
		return errors.New("missing category")
	}
	return nil
}

// HandleCreate handles POST /events requests.
func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	category, err := model.ParseCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	ev, err := h.deps.CreateEvent(r.Context(), strings.TrimSpace(req.Name), category)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// HandleList handles GET /events requests.
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Events(r.Context()))
}

// HandleGet handles GET /events/{id} requests.
func (h *EventsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ev, err := h.deps.Event(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

type processRequest struct {
	RequestID        string `json:"request_id"`
	BeforeSnapshotID string `json:"before_snapshot_id"`
	AfterSnapshotID  string `json:"after_snapshot_id"`
}

func (p processRequest) validate() error {
	switch {
	case strings.TrimSpace(p.RequestID) == "":
		return errors.New("missing request_id")
	case strings.TrimSpace(p.BeforeSnapshotID) == "":
		return errors.New("missing before_snapshot_id")
	case strings.TrimSpace(p.AfterSnapshotID) == "":
		return errors.New("missing after_snapshot_id")
	}
	return nil
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// HandleProcess handles POST /events/{id}/process requests. The request_id
// makes retries idempotent: a replay acks without re-queueing.
func (h *EventsHandler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	if h.deps.SeenAndRecord(r.Context(), req.RequestID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	job := model.ProcessJob{
		RequestID:        req.RequestID,
		EventID:          r.PathValue("id"),
		BeforeSnapshotID: req.BeforeSnapshotID,
		AfterSnapshotID:  req.AfterSnapshotID,
	}
	ok, err := h.deps.EnqueueProcess(r.Context(), job)
	if err != nil {
		h.deps.Unrecord(r.Context(), req.RequestID)
		writeDomainError(w, err)
		return
	}
	if !ok {
		// Roll back the seen mark so the client can retry.
		h.deps.Unrecord(r.Context(), req.RequestID)
		writeError(w, http.StatusTooManyRequests, "backpressure", ErrBackpressure)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}
