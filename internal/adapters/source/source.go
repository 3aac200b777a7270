// Package source retrieves the cyclist dataset.
//
// The remote source issues a single GET per Fetch and coalesces concurrent
// callers onto one request. File and Sample read the same JSON shape from
// disk or from the embedded copy used for offline rendering.
package source

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/okian/peloton/internal/domain/model"
)

// Source yields the ordered dataset.
type Source interface {
	Fetch(ctx context.Context) (model.Dataset, error)
	// Location names where the data comes from, for logs and errors.
	Location() string
}

func decode(location string, body []byte) (model.Dataset, error) {
	var records model.Dataset
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &FetchError{URL: location, Kind: KindDecode, Err: err}
	}
	if records == nil {
		return nil, &FetchError{URL: location, Kind: KindDecode, Err: fmt.Errorf("expected a JSON array of records")}
	}
	return records, nil
}
