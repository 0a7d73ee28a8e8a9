// Package api declares HTTP contracts and route registration helpers.
//
// Every read endpoint is a pure projection of the stored EventReport:
// handlers may truncate pre-sorted lists but never re-sort or re-derive.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alliancelab/warboard/internal/adapters/repository"
	"github.com/alliancelab/warboard/internal/domain/model"
	"github.com/alliancelab/warboard/internal/domain/report"
	"github.com/alliancelab/warboard/pkg/metrics"
)

// Dependencies required by the HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the app service.
type Dependencies interface {
	// Idempotency for processing requests.
	SeenAndRecord(ctx context.Context, id string) bool
	Unrecord(ctx context.Context, id string)

	CreateEvent(ctx context.Context, name string, category model.EventCategory) (model.Event, error)
	Event(ctx context.Context, id string) (model.Event, error)
	Events(ctx context.Context) []model.Event
	ImportSnapshot(ctx context.Context, takenAt time.Time, members []model.MemberRecord) (model.Snapshot, error)

	// EnqueueProcess queues a snapshot pair for analysis. The bool is false
	// on backpressure.
	EnqueueProcess(ctx context.Context, job model.ProcessJob) (bool, error)

	// Report returns the cached canonical report.
	Report(ctx context.Context, eventID string) (*report.EventReport, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	events    *EventsHandler
	snapshots *SnapshotsHandler
	reports   *ReportsHandler
	health    *HealthHandler
	stats     *StatsHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxTopLimit int) *Server {
	return &Server{
		events:    NewEventsHandler(deps),
		snapshots: NewSnapshotsHandler(deps),
		reports:   NewReportsHandler(deps, maxTopLimit),
		health:    NewHealthHandler(),
		stats:     NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.health.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.stats.HandleStats, "stats"))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	mux.HandleFunc("POST /events", MetricsMiddleware(s.events.HandleCreate, "events"))
	mux.HandleFunc("GET /events", MetricsMiddleware(s.events.HandleList, "events"))
	mux.HandleFunc("GET /events/{id}", MetricsMiddleware(s.events.HandleGet, "event"))
	mux.HandleFunc("POST /events/{id}/process", MetricsMiddleware(s.events.HandleProcess, "process"))

	mux.HandleFunc("POST /snapshots", MetricsMiddleware(s.snapshots.HandleImport, "snapshots"))

	mux.HandleFunc("GET /events/{id}/report", MetricsMiddleware(s.reports.HandleReport, "report"))
	mux.HandleFunc("GET /events/{id}/summary", MetricsMiddleware(s.reports.HandleSummary, "summary"))
	mux.HandleFunc("GET /events/{id}/groups", MetricsMiddleware(s.reports.HandleGroups, "groups"))
	mux.HandleFunc("GET /events/{id}/rankings", MetricsMiddleware(s.reports.HandleRankings, "rankings"))
	mux.HandleFunc("GET /events/{id}/distribution", MetricsMiddleware(s.reports.HandleDistribution, "distribution"))
	mux.HandleFunc("GET /events/{id}/members", MetricsMiddleware(s.reports.HandleMembers, "members"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates sentinel kinds from lower layers.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrEventNotFound),
		errors.Is(err, repository.ErrSnapshotNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrReportNotReady):
		writeError(w, http.StatusConflict, "report_not_ready", err)
	case errors.Is(err, repository.ErrEventExists):
		writeError(w, http.StatusConflict, "event_exists", err)
	case errors.Is(err, model.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
