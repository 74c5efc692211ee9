package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gaugekit/pkg/config"
	"github.com/matzehuels/gaugekit/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file (single format) or base path
	formats    []string // svg, png, dot, json
	scale      float64  // PNG resolution multiplier
	background string   // overrides the description's background
	detailed   bool     // geometry in dot node labels
	noCache    bool     // bypass the artifact cache entirely
	refresh    bool     // re-render even when cached
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [config]",
		Short: "Render a gauge description to SVG, PNG, DOT or JSON",
		Long: `Render builds the gauge described by a TOML or YAML file and writes one
file per requested format. Without --output the files are written next to
the description, named after it.`,
		Example: `  gaugekit render thermometer.toml
  gaugekit render tank.yaml -f svg,png --scale 3
  gaugekit render tank.yaml -f json -o ticks.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (overrides the description)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include geometry in dot node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	sp := newSpinner(ctx, os.Stderr, "Rendering "+filepath.Base(path))
	sp.start()
	res, err := runner.Execute(ctx, pipeline.Options{
		Config:     cfg,
		Formats:    opts.formats,
		Scale:      opts.scale,
		Background: opts.background,
		Detailed:   opts.detailed,
		Refresh:    opts.refresh,
	})
	sp.stop()
	if err != nil {
		if sp.cancelled() {
			return ctx.Err()
		}
		printError("Render failed")
		return err
	}

	paths := outputPaths(path, opts.output, opts.formats)
	for _, format := range opts.formats {
		if err := os.WriteFile(paths[format], res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}
	prog.done("Rendered " + cfg.Name)

	printSuccess("Rendered %s", cfg.Name)
	printStats(res.Stats.Scales, res.Stats.Nodes, res.CacheInfo.AllHit())
	for _, format := range opts.formats {
		printFile(paths[format])
	}
	return nil
}

// outputPaths names the file written for each format. A single format with
// an explicit output uses it verbatim; otherwise the output (or the input
// path) minus its extension is the base and the format is the extension.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := output
	if base == "" {
		base = input
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
