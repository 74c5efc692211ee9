package config

import (
	"fmt"

	"github.com/matzehuels/gaugekit/pkg/gauge"
	"github.com/matzehuels/gaugekit/pkg/gfx"
	"github.com/matzehuels/gaugekit/pkg/gfx/scene"
	"github.com/matzehuels/gaugekit/pkg/indicator"
	"github.com/matzehuels/gaugekit/pkg/rectangular"
	"github.com/matzehuels/gaugekit/pkg/scale"
	"github.com/matzehuels/gaugekit/pkg/scaler"
)

// Build creates a live gauge drawing into the root of sc. The description
// should be validated first.
func (g *Gauge) Build(sc *scene.Scene) (*gauge.Gauge, error) {
	gg := gauge.New(g.Name, sc.Root(), sc.DefaultFont())
	if g.Font != nil {
		gg.SetFont(g.Font)
	}
	for i := range g.Scales {
		s := &g.Scales[i]
		r, err := s.build()
		if err != nil {
			return nil, err
		}
		if err := gg.AddElement(s.Name, r); err != nil {
			return nil, fmt.Errorf("add scale %s: %w", s.Name, err)
		}
	}
	return gg, nil
}

// Scaler creates the scaler described by s.
func (s *Scale) Scaler() *scaler.Linear {
	lo, hi := s.bounds()
	opts := []scaler.Option{scaler.WithRange(lo, hi)}
	if s.SnapInterval != nil {
		if *s.SnapInterval > 0 {
			opts = append(opts, scaler.WithSnapInterval(*s.SnapInterval))
		} else {
			opts = append(opts, scaler.WithoutSnap())
		}
	}
	if s.MajorTickInterval > 0 {
		opts = append(opts, scaler.WithMajorTickInterval(s.MajorTickInterval))
	}
	if s.MinorTickInterval > 0 {
		opts = append(opts, scaler.WithMinorTickInterval(s.MinorTickInterval))
	}
	return scaler.New(opts...)
}

func (s *Scale) build() (*rectangular.Scale, error) {
	orientation, err := rectangular.ParseOrientation(s.Orientation)
	if err != nil {
		return nil, err
	}
	var opts []scale.Option
	if s.Font != nil {
		opts = append(opts, scale.WithFont(*s.Font))
	}
	if s.LabelGap != nil {
		opts = append(opts, scale.WithLabelGap(*s.LabelGap))
	}
	if s.LabelPosition != "" {
		opts = append(opts, scale.WithLabelPosition(s.LabelPosition))
	}
	r := rectangular.New(s.Scaler(), rectangular.Geometry{
		Origin:      gfx.Point{X: s.X, Y: s.Y},
		Length:      s.Length,
		Orientation: orientation,
	}, opts...)

	for _, ind := range s.Indicators {
		v := ind.build()
		r.AddIndicator(ind.Name, v, ind.Behind)
		v.SetValue(scaler.Coerce(ind.Value))
	}
	return r, nil
}

type valueIndicator interface {
	scale.Indicator
	SetValue(v float64)
}

// build creates the indicator; its value is assigned once attached so that
// snapping goes through the scale.
func (ind Indicator) build() valueIndicator {
	opts := []indicator.Option{
		indicator.WithColor(ind.Color),
		indicator.WithSize(ind.Size),
	}
	if ind.Snap {
		opts = append(opts, indicator.WithSnap())
	}
	if ind.Kind == KindBar {
		return indicator.NewBar(opts...)
	}
	return indicator.NewMarker(opts...)
}
