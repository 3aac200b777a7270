// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/peloton/internal/app"
	"github.com/okian/peloton/internal/domain/interaction"
	"github.com/okian/peloton/internal/domain/plot"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the pipeline.
type Dependencies interface {
	SVG() ([]byte, error)
	Markers() ([]plot.Marker, error)

	// Pointer events are applied one at a time; each call returns the
	// tooltip that results.
	Enter(ctx context.Context, index int, x, y float64) (interaction.Tooltip, error)
	Leave(ctx context.Context) (interaction.Tooltip, error)
	Tooltip() interaction.Tooltip
}

// Server wires HTTP routes for the chart API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	chartHandler   *ChartHandler
	pointerHandler *PointerHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		chartHandler:   NewChartHandler(deps),
		pointerHandler: NewPointerHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(path, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(path, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}
	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("/stats", "stats", s.statsHandler.HandleStats)
	route("/chart.svg", "chart", s.chartHandler.HandleSVG)
	route("/markers", "markers", s.chartHandler.HandleMarkers)
	route("/tooltip", "tooltip", s.pointerHandler.HandleTooltip)
	route("/pointer/enter", "pointer_enter", s.pointerHandler.HandleEnter)
	route("/pointer/leave", "pointer_leave", s.pointerHandler.HandleLeave)
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

// writeFailure maps a pipeline or request error onto a status and code.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", err)
	case errors.Is(err, ErrBadRequest), errors.Is(err, app.ErrUnknownMarker):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, app.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", err)
	case errors.Is(err, app.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, "not_loaded", err)
	case errors.Is(err, app.ErrStopped), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
