package api

import (
	"net/http"
	"time"
)

// ChartHandler serves the rendered chart and its marker metadata.
type ChartHandler struct {
	deps Dependencies
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps Dependencies) *ChartHandler {
	return &ChartHandler{deps: deps}
}

// markerResponse is the queryable shape of one plotted marker.
type markerResponse struct {
	Index    int     `json:"index"`
	CX       float64 `json:"cx"`
	CY       float64 `json:"cy"`
	R        float64 `json:"r"`
	Fill     string  `json:"fill"`
	Category string  `json:"category"`
	XValue   int     `json:"xvalue"`
	YValue   string  `json:"yvalue"`
	Name     string  `json:"name"`
	Time     string  `json:"time"`
	Doping   string  `json:"doping"`
}

// HandleSVG handles GET /chart.svg requests.
func (h *ChartHandler) HandleSVG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeFailure(w, NewKind("chart.svg", ErrMethodNotAllowed, r.Method))
		return
	}
	doc, err := h.deps.SVG()
	if err != nil {
		writeFailure(w, Wrap("chart.svg", err))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// HandleMarkers handles GET /markers requests.
func (h *ChartHandler) HandleMarkers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeFailure(w, NewKind("markers", ErrMethodNotAllowed, r.Method))
		return
	}
	markers, err := h.deps.Markers()
	if err != nil {
		writeFailure(w, Wrap("markers", err))
		return
	}
	out := make([]markerResponse, len(markers))
	for i, m := range markers {
		out[i] = markerResponse{
			Index:    m.Index,
			CX:       m.CX,
			CY:       m.CY,
			R:        m.R,
			Fill:     m.Fill,
			Category: string(m.Category),
			XValue:   m.XValue,
			YValue:   m.YValue.UTC().Format(time.RFC3339),
			Name:     m.Record.Name,
			Time:     m.Record.Time,
			Doping:   m.Record.Doping,
		}
	}
	writeJSON(w, http.StatusOK, out)
}
