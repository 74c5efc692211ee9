package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gaugekit/pkg/config"
	"github.com/matzehuels/gaugekit/pkg/errors"
	"github.com/matzehuels/gaugekit/pkg/pipeline"
	"github.com/matzehuels/gaugekit/pkg/render/nodelink"
)

var inspectFormats = map[string]bool{"svg": true, "png": true, "dot": true}

type inspectOpts struct {
	output     string
	format     string
	detailed   bool
	groupsOnly bool
}

// inspectCommand creates the inspect command, which draws the scene tree a
// gauge description produces.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "inspect [config]",
		Short: "Draw the scene hierarchy of a gauge with Graphviz",
		Example: `  gaugekit inspect thermometer.toml
  gaugekit inspect tank.yaml --groups-only -f png -o tank-tree.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(opts.format, inspectFormats); err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <config>-scene.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, png or dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include geometry and style in node labels")
	cmd.Flags().BoolVar(&opts.groupsOnly, "groups-only", false, "omit primitive shapes")
	return cmd
}

func (c *CLI) runInspect(_ context.Context, path string, opts inspectOpts) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	sc, g, err := pipeline.Build(cfg)
	if err != nil {
		return err
	}
	c.Logger.Debug("built scene", "gauge", g.Name(), "nodes", sc.Count())

	dot := nodelink.ToDOT(sc, nodelink.Options{Detailed: opts.detailed, GroupsOnly: opts.groupsOnly})
	var data []byte
	switch opts.format {
	case "svg":
		data, err = nodelink.RenderSVG(dot)
	case "png":
		data, err = nodelink.RenderPNG(dot)
	default:
		data = []byte(dot)
	}
	if err != nil {
		return fmt.Errorf("graphviz: %w", err)
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "-scene." + opts.format
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	prog.done("Drew scene of " + g.Name())

	printSuccess("Scene of %s", g.Name())
	printKeyValue("nodes", fmt.Sprintf("%d", sc.Count()))
	printKeyValue("scales", fmt.Sprintf("%d", len(g.Elements())))
	printFile(out)
	return nil
}
