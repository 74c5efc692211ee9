// Package pipeline turns gauge descriptions into rendered artifacts.
//
// The CLI and the render server both go through a [Runner], so a gauge
// renders the same way, and hits the same cache entries, whichever entry
// point asked for it.
//
// # Stages
//
//  1. Build: validate the description, create a scene and a live gauge, and
//     refresh every scale
//  2. Render: encode the scene in each requested format
//
// Artifacts are cached per format under a key derived from the description's
// content hash and the rendering options. When every requested format is
// cached, the build stage is skipped entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  cfg,
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gaugekit/pkg/cache"
	"github.com/matzehuels/gaugekit/pkg/config"
	"github.com/matzehuels/gaugekit/pkg/errors"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// DefaultScale is the PNG resolution multiplier.
const DefaultScale = 2.0

// MaxScale bounds the PNG resolution multiplier.
const MaxScale = 8.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Options configures a pipeline run.
type Options struct {
	// Config is the gauge description. Defaults are applied to it in place.
	Config *config.Gauge `json:"config"`

	// Formats lists the artifacts to produce; defaults to svg.
	Formats []string `json:"formats,omitempty"`

	// Scale is the PNG resolution multiplier.
	Scale float64 `json:"scale,omitempty"`

	// Background overrides the description's background color.
	Background string `json:"background,omitempty"`

	// Detailed adds geometry to the nodes of the dot diagram.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// ConfigHash is the content hash of the validated description.
	ConfigHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which formats came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics. Build figures are zero when
// every artifact came from the cache.
type Stats struct {
	Scales     int
	Nodes      int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per format.
type CacheInfo struct {
	Hits   []string
	Misses []string
}

// AllHit reports whether every artifact was served from the cache.
func (c CacheInfo) AllHit() bool { return len(c.Misses) == 0 && len(c.Hits) > 0 }

// ValidateAndSetDefaults applies defaults and validates the options and the
// description. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no gauge description")
	}
	o.Config.SetDefaults()
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if !(o.Scale <= MaxScale) {
		return errors.New(errors.ErrCodeInvalidInput, "png scale %v exceeds the limit of %v", o.Scale, MaxScale)
	}
	if o.Background == "" {
		o.Background = o.Config.Background
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns the cache key options for format.
func (o Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		opts.Background = o.Background
	case FormatPNG:
		opts.Background = o.Background
		opts.Scale = o.Scale
	case FormatDOT:
		opts.Detailed = o.Detailed
	}
	return opts
}

// ValidateFormat checks a single output format.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, ValidFormats)
}

// ValidateFormats checks every output format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}
