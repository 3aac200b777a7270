package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrUnknownPointerKind = errors.New("unknown pointer event kind")
)
