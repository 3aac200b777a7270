package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/peloton/internal/config"
	"github.com/okian/peloton/internal/render"
	"github.com/okian/peloton/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd wires the serve and render subcommands. Logs go to logOut so
// render can keep stdout for the SVG.
func newRootCmd(out, logOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "peloton",
		Short:         "Scatter plot of doping allegations among the fastest Alpe d'Huez climbs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)
	root.SetErr(logOut)
	root.AddCommand(newServeCmd(logOut), newRenderCmd(out, logOut))
	return root
}

// setup loads configuration and initializes the global logger from it.
func setup(ctx context.Context, logOut io.Writer) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.InitWithOptions(cfg.LogFormat, logOut); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}

func layoutFrom(cfg *config.Config) render.Layout {
	return render.Layout{
		Width:        float64(cfg.Width),
		Height:       float64(cfg.Height),
		Padding:      float64(cfg.Padding),
		TopPadding:   float64(cfg.TopPadding),
		MarkerRadius: float64(cfg.MarkerRadius),
		TickCount:    cfg.TickCount,
		Title:        cfg.Title,
		Subtitle:     cfg.Subtitle,
	}
}

func fetchTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.FetchTimeoutMS) * time.Millisecond
}
