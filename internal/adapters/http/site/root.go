// Package site serves the browser page that hosts the chart.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded page and its assets at /.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", http.FileServer(FS()))
}
