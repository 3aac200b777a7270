package main

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/peloton/internal/adapters/source"
	"github.com/okian/peloton/internal/app"
	"github.com/okian/peloton/internal/config"
	"github.com/okian/peloton/pkg/logger"
	"github.com/spf13/cobra"
)

type renderFlags struct {
	output string
	data   string
	sample bool
}

func newRenderCmd(out, logOut io.Writer) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the chart to a standalone SVG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd.Context(), logOut)
			if err != nil {
				return err
			}
			p := app.Initialize(pickSource(cfg, f),
				app.WithLogger(logger.Get()),
				app.WithLayout(layoutFrom(cfg)),
			)
			if err := p.Load(cmd.Context()); err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}
			doc, err := p.SVG()
			if err != nil {
				return fmt.Errorf("failed to render: %w", err)
			}
			if f.output == "" || f.output == "-" {
				_, err = out.Write(doc)
				return err
			}
			if err := os.WriteFile(f.output, doc, 0o644); err != nil { //nolint:gosec // output is meant to be readable
				return fmt.Errorf("failed to write %s: %w", f.output, err)
			}
			logger.Get().Info(cmd.Context(), "chart written", logger.String("path", f.output), logger.Int("bytes", len(doc)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the SVG to this file instead of stdout")
	cmd.Flags().StringVar(&f.data, "data", "", "read the dataset from a local JSON file")
	cmd.Flags().BoolVar(&f.sample, "sample", false, "use the bundled sample dataset")
	cmd.MarkFlagsMutuallyExclusive("data", "sample")
	return cmd
}

// pickSource prefers the bundled sample, then a local file, then the
// configured URL.
func pickSource(cfg *config.Config, f renderFlags) source.Source {
	switch {
	case f.sample:
		return source.Sample()
	case f.data != "":
		return source.NewFile(f.data)
	default:
		return source.NewHTTP(cfg.DataURL,
			source.WithTimeout(fetchTimeout(cfg)),
			source.WithUserAgent(cfg.UserAgent),
		)
	}
}
