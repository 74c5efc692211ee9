package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gaugekit/pkg/pipeline"
	"github.com/matzehuels/gaugekit/pkg/scale"
	"github.com/matzehuels/gaugekit/pkg/scaler"
)

// scalerFlags are the linear scaler settings shared by ticks and explore.
// Zero intervals leave the scaler's computed defaults in place.
type scalerFlags struct {
	min, max     float64
	major, minor float64
	snap         float64
}

func (f *scalerFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.min, "min", scaler.DefaultMinimum, "minimum value")
	cmd.Flags().Float64Var(&f.max, "max", scaler.DefaultMaximum, "maximum value")
	cmd.Flags().Float64Var(&f.major, "major", 0, "major tick interval (default a tenth of the range)")
	cmd.Flags().Float64Var(&f.minor, "minor", 0, "minor tick interval (default a fifth of the major interval)")
	cmd.Flags().Float64Var(&f.snap, "snap", scaler.DefaultSnapInterval, "snap interval (0 disables snapping)")
}

func (f scalerFlags) scaler() *scaler.Linear {
	opts := []scaler.Option{scaler.WithRange(f.min, f.max)}
	if f.snap > 0 {
		opts = append(opts, scaler.WithSnapInterval(f.snap))
	} else {
		opts = append(opts, scaler.WithoutSnap())
	}
	if f.major > 0 {
		opts = append(opts, scaler.WithMajorTickInterval(f.major))
	}
	if f.minor > 0 {
		opts = append(opts, scaler.WithMinorTickInterval(f.minor))
	}
	return scaler.New(opts...)
}

// ticksCommand creates the ticks command.
func (c *CLI) ticksCommand() *cobra.Command {
	var flags scalerFlags
	var asJSON, majorsOnly bool

	cmd := &cobra.Command{
		Use:   "ticks",
		Short: "Print the ticks of a linear scale",
		Example: `  gaugekit ticks --min 0 --max 50 --major 10
  gaugekit ticks --max 1 --major 0.25 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := pipeline.TickRows(scale.New(flags.scaler()))
			if err != nil {
				return err
			}
			if majorsOnly {
				rows = majorRows(rows)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			printTickTable(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().BoolVar(&majorsOnly, "majors", false, "only print major ticks")
	return cmd
}

func majorRows(rows []pipeline.TickRow) []pipeline.TickRow {
	out := rows[:0:0]
	for _, r := range rows {
		if !r.Minor {
			out = append(out, r)
		}
	}
	return out
}

func printTickTable(w io.Writer, rows []pipeline.TickRow) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	minorStyle := cellStyle.Foreground(colorDim)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("VALUE", "POSITION", "KIND", "LABEL").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case rows[row].Minor:
				return minorStyle
			default:
				return cellStyle
			}
		})
	for _, r := range rows {
		kind := "major"
		if r.Minor {
			kind = "minor"
		}
		t.Row(fmt.Sprintf("%g", r.Value), fmt.Sprintf("%.4f", r.Position), kind, r.Label)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d ticks", len(rows))))
}
