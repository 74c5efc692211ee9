package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/gaugekit/pkg/errors"
	"github.com/matzehuels/gaugekit/pkg/gauge"
	"github.com/matzehuels/gaugekit/pkg/gfx/scene"
	"github.com/matzehuels/gaugekit/pkg/render/nodelink"
	"github.com/matzehuels/gaugekit/pkg/render/raster"
	"github.com/matzehuels/gaugekit/pkg/render/svg"
	"github.com/matzehuels/gaugekit/pkg/scale"
	"github.com/matzehuels/gaugekit/pkg/scaler"
)

// Encode renders a built gauge in one format.
func Encode(sc *scene.Scene, g *gauge.Gauge, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []svg.Option{svg.WithTitle(g.Name())}
		if opts.Background != "" {
			svgOpts = append(svgOpts, svg.WithBackground(opts.Background))
		}
		return svg.Encode(sc, svgOpts...), nil
	case FormatPNG:
		return raster.Encode(sc, raster.WithScale(opts.Scale), raster.WithBackground(opts.Background))
	case FormatDOT:
		return []byte(nodelink.ToDOT(sc, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatJSON:
		tables, err := TickTables(g)
		if err != nil {
			return nil, err
		}
		return json.MarshalIndent(tables, "", "  ")
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "format %q", format)
	}
}

// TickRow is one tick as reported by the json format.
type TickRow struct {
	Value    float64 `json:"value"`
	Position float64 `json:"position"`
	Minor    bool    `json:"minor,omitempty"`
	Label    string  `json:"label,omitempty"`
}

// ScaleTicks is the tick table of one scale.
type ScaleTicks struct {
	Scale string    `json:"scale"`
	Ticks []TickRow `json:"ticks"`
}

// ticker is implemented by every scale kind through the embedded
// *scale.Scale.
type ticker interface {
	Name() string
	ComputeTicks() ([]scaler.TickItem, error)
	TickLabelFunc() scale.TickLabelFunc
}

// TickTables returns the tick table of every scale of g in insertion order.
// Elements that are not scales are skipped.
func TickTables(g *gauge.Gauge) ([]ScaleTicks, error) {
	var out []ScaleTicks
	for _, el := range g.Elements() {
		t, ok := el.(ticker)
		if !ok {
			continue
		}
		rows, err := TickRows(t)
		if err != nil {
			return nil, err
		}
		out = append(out, ScaleTicks{Scale: t.Name(), Ticks: rows})
	}
	return out, nil
}

// TickRows computes the ticks of a scale and labels them with its label
// function.
func TickRows(t interface {
	ComputeTicks() ([]scaler.TickItem, error)
	TickLabelFunc() scale.TickLabelFunc
}) ([]TickRow, error) {
	items, err := t.ComputeTicks()
	if err != nil {
		return nil, err
	}
	label := t.TickLabelFunc()
	rows := make([]TickRow, len(items))
	for i, it := range items {
		rows[i] = TickRow{Value: it.Value, Position: it.Position, Minor: it.IsMinor}
		if text, ok := label(it); ok {
			rows[i].Label = text
		}
	}
	return rows, nil
}
