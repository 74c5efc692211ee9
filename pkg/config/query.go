package config

import (
	"net/url"

	"github.com/spf13/cast"

	"github.com/matzehuels/gaugekit/pkg/errors"
)

// Query parameters understood by [FromQuery].
var queryParams = map[string]bool{
	"name": true, "width": true, "height": true, "background": true,
	"orientation": true, "length": true, "min": true, "max": true,
	"major": true, "minor": true, "snap": true, "label_position": true,
	"value": true, "kind": true, "color": true,
}

// FromQuery describes a single-scale gauge from URL query parameters, as
// used by the render server:
//
//	/render/svg?min=0&max=50&value=21.5&kind=bar&orientation=vertical
//
// Missing parameters take defaults; the scale fills the gauge with a margin.
func FromQuery(q url.Values) (*Gauge, error) {
	for k := range q {
		if !queryParams[k] {
			return nil, errors.New(errors.ErrCodeUnknownProperty, "unknown parameter %q", k)
		}
	}

	num := func(key string) (*float64, error) {
		raw := q.Get(key)
		if raw == "" {
			return nil, nil
		}
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parameter %s", key)
		}
		return &v, nil
	}
	orZero := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}

	g := &Gauge{Name: q.Get("name"), Background: q.Get("background")}
	width, err := num("width")
	if err != nil {
		return nil, err
	}
	height, err := num("height")
	if err != nil {
		return nil, err
	}
	g.Width, g.Height = orZero(width), orZero(height)
	g.SetDefaults()

	s := Scale{
		Name:          "main",
		Orientation:   q.Get("orientation"),
		LabelPosition: q.Get("label_position"),
	}
	for key, dst := range map[string]**float64{"min": &s.Minimum, "max": &s.Maximum, "snap": &s.SnapInterval} {
		if *dst, err = num(key); err != nil {
			return nil, err
		}
	}
	major, err := num("major")
	if err != nil {
		return nil, err
	}
	minor, err := num("minor")
	if err != nil {
		return nil, err
	}
	s.MajorTickInterval, s.MinorTickInterval = orZero(major), orZero(minor)
	length, err := num("length")
	if err != nil {
		return nil, err
	}

	const margin = 20.0
	if s.Orientation == "vertical" {
		s.X, s.Y = g.Width/2, g.Height-margin
		s.Length = g.Height - 2*margin
	} else {
		s.X, s.Y = margin, g.Height/2
		s.Length = g.Width - 2*margin
	}
	if length != nil {
		s.Length = *length
	}

	if raw := q.Get("value"); raw != "" {
		kind := q.Get("kind")
		if kind == "" {
			kind = KindMarker
		}
		s.Indicators = []Indicator{{Name: "value", Kind: kind, Value: raw, Color: q.Get("color"), Snap: true}}
	}
	g.Scales = []Scale{s}
	return g, nil
}
