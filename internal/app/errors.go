package app

import "errors"

// Sentinel errors returned by the Pipeline.
var (
	ErrNotLoaded     = errors.New("chart not loaded")
	ErrUnknownMarker = errors.New("unknown marker")
	ErrBackpressure  = errors.New("too many pending pointer events")
	ErrStopped       = errors.New("pipeline stopped")
)
