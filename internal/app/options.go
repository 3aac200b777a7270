package app

import (
	"github.com/okian/peloton/internal/render"
	"github.com/okian/peloton/pkg/logger"
)

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithLayout sets the chart dimensions and titles.
func WithLayout(l render.Layout) Option {
	return func(p *Pipeline) {
		p.layout = l
	}
}

// WithQueueSize bounds the number of pending pointer events.
func WithQueueSize(size int) Option {
	return func(p *Pipeline) {
		if size > 0 {
			p.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the pipeline.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}
