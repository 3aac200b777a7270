package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const maxPointerBody = 1 << 10

// PointerHandler drives the tooltip from pointer events.
type PointerHandler struct {
	deps Dependencies
}

// NewPointerHandler creates a new pointer handler.
func NewPointerHandler(deps Dependencies) *PointerHandler {
	return &PointerHandler{deps: deps}
}

// enterRequest is the body of POST /pointer/enter.
type enterRequest struct {
	Index *int    `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

func (e enterRequest) validate() error {
	switch {
	case e.Index == nil:
		return errors.New("missing index")
	case *e.Index < 0:
		return errors.New("index must not be negative")
	}
	return nil
}

// HandleEnter handles POST /pointer/enter requests.
func (h *PointerHandler) HandleEnter(w http.ResponseWriter, r *http.Request) {
	const op = "pointer.enter"
	if r.Method != http.MethodPost {
		writeFailure(w, NewKind(op, ErrMethodNotAllowed, r.Method))
		return
	}

	var req enterRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxPointerBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	tip, err := h.deps.Enter(r.Context(), *req.Index, req.X, req.Y)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, tip)
}

// HandleLeave handles POST /pointer/leave requests.
func (h *PointerHandler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	const op = "pointer.leave"
	if r.Method != http.MethodPost {
		writeFailure(w, NewKind(op, ErrMethodNotAllowed, r.Method))
		return
	}
	tip, err := h.deps.Leave(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, tip)
}

// HandleTooltip handles GET /tooltip requests.
func (h *PointerHandler) HandleTooltip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeFailure(w, NewKind("tooltip", ErrMethodNotAllowed, r.Method))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Tooltip())
}
