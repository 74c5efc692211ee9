// Package config describes gauges declaratively.
//
// A description is a [Gauge] with one or more straight-line scales, each
// carrying its domain, tick intervals, label settings and indicators. Files
// are TOML or YAML, chosen by extension:
//
//	name = "thermometer"
//	width = 320
//	height = 80
//
//	[[scales]]
//	name = "celsius"
//	length = 280
//	x = 20
//	y = 30
//	minimum = -20
//	maximum = 40
//	major_tick_interval = 10
//
//	[[scales.indicators]]
//	name = "now"
//	kind = "marker"
//	value = 21.5
//
// [Gauge.Build] turns a validated description into a live gauge drawing into a
// scene.
package config

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	gkerrors "github.com/matzehuels/gaugekit/pkg/errors"
	"github.com/matzehuels/gaugekit/pkg/gfx"
)

// Formats understood by [Parse].
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Indicator kinds.
const (
	KindMarker = "marker"
	KindBar    = "bar"
)

// Defaults applied by [Gauge.SetDefaults].
const (
	DefaultWidth  = 400.0
	DefaultHeight = 100.0
	DefaultName   = "gauge"

	// MaxDimension bounds the gauge width and height.
	MaxDimension = 4096.0
)

// Gauge describes a gauge and its scales.
type Gauge struct {
	Name       string    `json:"name" toml:"name" yaml:"name"`
	Width      float64   `json:"width" toml:"width" yaml:"width"`
	Height     float64   `json:"height" toml:"height" yaml:"height"`
	Background string    `json:"background,omitempty" toml:"background" yaml:"background"`
	Font       *gfx.Font `json:"font,omitempty" toml:"font" yaml:"font"`
	Scales     []Scale   `json:"scales" toml:"scales" yaml:"scales"`
}

// Scale describes one straight-line scale.
type Scale struct {
	Name              string      `json:"name" toml:"name" yaml:"name"`
	Orientation       string      `json:"orientation,omitempty" toml:"orientation" yaml:"orientation"`
	X                 float64     `json:"x" toml:"x" yaml:"x"`
	Y                 float64     `json:"y" toml:"y" yaml:"y"`
	Length            float64     `json:"length" toml:"length" yaml:"length"`
	Minimum           *float64    `json:"minimum,omitempty" toml:"minimum" yaml:"minimum"`
	Maximum           *float64    `json:"maximum,omitempty" toml:"maximum" yaml:"maximum"`
	SnapInterval      *float64    `json:"snap_interval,omitempty" toml:"snap_interval" yaml:"snap_interval"`
	MajorTickInterval float64     `json:"major_tick_interval,omitempty" toml:"major_tick_interval" yaml:"major_tick_interval"`
	MinorTickInterval float64     `json:"minor_tick_interval,omitempty" toml:"minor_tick_interval" yaml:"minor_tick_interval"`
	LabelGap          *float64    `json:"label_gap,omitempty" toml:"label_gap" yaml:"label_gap"`
	LabelPosition     string      `json:"label_position,omitempty" toml:"label_position" yaml:"label_position"`
	Font              *gfx.Font   `json:"font,omitempty" toml:"font" yaml:"font"`
	Indicators        []Indicator `json:"indicators,omitempty" toml:"indicators" yaml:"indicators"`
}

// Indicator describes a marker or bar. Value is loosely typed so that
// "42", 42 and 42.0 are all accepted.
type Indicator struct {
	Name   string  `json:"name" toml:"name" yaml:"name"`
	Kind   string  `json:"kind" toml:"kind" yaml:"kind"`
	Value  any     `json:"value" toml:"value" yaml:"value"`
	Behind bool    `json:"behind,omitempty" toml:"behind" yaml:"behind"`
	Color  string  `json:"color,omitempty" toml:"color" yaml:"color"`
	Size   float64 `json:"size,omitempty" toml:"size" yaml:"size"`
	Snap   bool    `json:"snap,omitempty" toml:"snap" yaml:"snap"`
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", gkerrors.New(gkerrors.ErrCodeInvalidFormat, "unsupported config extension %q (use .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// Load reads and parses a description file. It does not validate.
func Load(path string) (*Gauge, error) {
	if err := gkerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, gkerrors.Wrap(gkerrors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, err
	}
	return Parse(data, format)
}

// Parse decodes a description. Unknown keys are rejected.
func Parse(data []byte, format string) (*Gauge, error) {
	var g Gauge
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &g)
		if err != nil {
			return nil, gkerrors.Wrap(gkerrors.ErrCodeInvalidConfig, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, gkerrors.New(gkerrors.ErrCodeUnknownProperty, "unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&g); err != nil && !errors.Is(err, io.EOF) {
			return nil, gkerrors.Wrap(gkerrors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return nil, gkerrors.New(gkerrors.ErrCodeInvalidFormat, "unsupported config format %q", format)
	}
	return &g, nil
}

// SetDefaults fills in the gauge name and size when unset.
func (g *Gauge) SetDefaults() {
	if g.Name == "" {
		g.Name = DefaultName
	}
	if g.Width == 0 {
		g.Width = DefaultWidth
	}
	if g.Height == 0 {
		g.Height = DefaultHeight
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
