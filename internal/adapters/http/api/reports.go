package api

import (
	"net/http"
	"strconv"

	"github.com/alliancelab/warboard/internal/domain/report"
)

// ReportsHandler serves projections of the canonical event report.
type ReportsHandler struct {
	deps        Dependencies
	maxTopLimit int
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(deps Dependencies, maxTopLimit int) *ReportsHandler {
	if maxTopLimit <= 0 {
		maxTopLimit = 100
	}
	return &ReportsHandler{deps: deps, maxTopLimit: maxTopLimit}
}

func (h *ReportsHandler) load(w http.ResponseWriter, r *http.Request) (*report.EventReport, bool) {
	rep, err := h.deps.Report(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	return rep, true
}

// topLimit parses the optional ?top=N parameter. Zero means no truncation.
func (h *ReportsHandler) topLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("top")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrInvalidTopParam
	}
	if n > h.maxTopLimit {
		n = h.maxTopLimit
	}
	return n, nil
}

// topN copies the head of a pre-ranked slice. The canonical slice is never
// returned directly so callers cannot mutate the stored report.
func topN[T any](ranked []T, n int) []T {
	if n <= 0 || n > len(ranked) {
		n = len(ranked)
	}
	out := make([]T, n)
	copy(out, ranked[:n])
	return out
}

// HandleReport handles GET /events/{id}/report requests.
func (h *ReportsHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleSummary handles GET /events/{id}/summary requests.
func (h *ReportsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rep.Summary)
}

// HandleGroups handles GET /events/{id}/groups requests.
func (h *ReportsHandler) HandleGroups(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rep.GroupStats)
}

type rankingsResponse struct {
	TopMembers      []report.TopMember `json:"top_members"`
	TopContributors []report.TopMember `json:"top_contributors,omitempty"`
	TopAssisters    []report.TopMember `json:"top_assisters,omitempty"`
	Violators       []report.Violator  `json:"violators,omitempty"`
}

// HandleRankings handles GET /events/{id}/rankings requests. An optional
// ?top=N truncates each list after ranking; ranks keep their positions.
func (h *ReportsHandler) HandleRankings(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.load(w, r)
	if !ok {
		return
	}
	limit, err := h.topLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeJSON(w, http.StatusOK, rankingsResponse{
		TopMembers:      topN(rep.TopMembers, limit),
		TopContributors: topN(rep.TopContributors, limit),
		TopAssisters:    topN(rep.TopAssisters, limit),
		Violators:       topN(rep.Violators, limit),
	})
}

type distributionResponse struct {
	Bins    []report.Bin         `json:"bins"`
	BoxPlot *report.BoxPlotStats `json:"box_plot,omitempty"`
}

// HandleDistribution handles GET /events/{id}/distribution requests.
func (h *ReportsHandler) HandleDistribution(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, distributionResponse{
		Bins:    rep.Distribution,
		BoxPlot: rep.BoxPlot,
	})
}

// HandleMembers handles GET /events/{id}/members requests.
func (h *ReportsHandler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rep.Members)
}
