// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers a YAML file and the environment on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds for this package.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// DefaultDataURL is the published cyclist dataset.
const DefaultDataURL = "https://raw.githubusercontent.com/FreeCodeCamp/ProjectReferenceData/master/cyclist-data.json"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataURL is fetched once to obtain the dataset.
	DataURL string `koanf:"data_url"`

	// FetchTimeoutMS bounds the dataset request.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// UserAgent is sent with the dataset request.
	UserAgent string `koanf:"user_agent"`

	// Width and Height are the plot dimensions in pixels. The drawing
	// surface is 35px taller than Height to leave room for the x axis.
	Width  int `koanf:"width"`
	Height int `koanf:"height"`

	// Padding is the horizontal padding of the x range; TopPadding the
	// top of the y range.
	Padding    int `koanf:"padding"`
	TopPadding int `koanf:"top_padding"`

	// MarkerRadius is the radius of each plotted point.
	MarkerRadius int `koanf:"marker_radius"`

	// TickCount is the approximate number of ticks per axis.
	TickCount int `koanf:"tick_count"`

	// PointerQueueSize bounds pending pointer events.
	PointerQueueSize int `koanf:"pointer_queue_size"`

	Title    string `koanf:"title"`
	Subtitle string `koanf:"subtitle"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		DataURL:          DefaultDataURL,
		FetchTimeoutMS:   10_000,
		UserAgent:        "peloton",
		Width:            700,
		Height:           500,
		Padding:          60,
		TopPadding:       100,
		MarkerRadius:     5,
		TickCount:        10,
		PointerQueueSize: 64,
		Title:            "Doping in Professional Bicycle Racing",
		Subtitle:         "35 Fastest times up Alpe d'Huez",
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataURL) == "":
		return fmt.Errorf("%w: data_url must not be empty", ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: width and height must be positive", ErrInvalidConfig)
	case c.Padding < 0 || 2*c.Padding >= c.Width:
		return fmt.Errorf("%w: padding must leave a non-empty x range", ErrInvalidConfig)
	case c.TopPadding < 0 || c.TopPadding >= c.Height:
		return fmt.Errorf("%w: top_padding must leave a non-empty y range", ErrInvalidConfig)
	case c.MarkerRadius <= 0:
		return fmt.Errorf("%w: marker_radius must be positive", ErrInvalidConfig)
	case c.TickCount <= 0:
		return fmt.Errorf("%w: tick_count must be positive", ErrInvalidConfig)
	case c.PointerQueueSize <= 0:
		return fmt.Errorf("%w: pointer_queue_size must be positive", ErrInvalidConfig)
	case c.FetchTimeoutMS <= 0:
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	}
	return nil
}
