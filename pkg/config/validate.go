package config

import (
	"math"

	"github.com/matzehuels/gaugekit/pkg/errors"
	"github.com/matzehuels/gaugekit/pkg/rectangular"
	"github.com/matzehuels/gaugekit/pkg/scaler"
)

// Validate checks the description. Problems are reported as
// errors.ErrCodeInvalidConfig, or errors.ErrCodeInvalidInput for bad names.
func (g *Gauge) Validate() error {
	if err := errors.ValidateName(g.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "gauge name")
	}
	if !finite(g.Width) || !finite(g.Height) || g.Width <= 0 || g.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gauge size must be positive, got %vx%v", g.Width, g.Height)
	}
	if g.Width > MaxDimension || g.Height > MaxDimension {
		return errors.New(errors.ErrCodeInvalidConfig, "gauge size %vx%v exceeds the limit of %v", g.Width, g.Height, MaxDimension)
	}
	if len(g.Scales) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gauge %q has no scales", g.Name)
	}
	seen := make(map[string]bool, len(g.Scales))
	for i := range g.Scales {
		s := &g.Scales[i]
		if err := s.validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate scale %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

func (s *Scale) validate() error {
	if err := errors.ValidateName(s.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "scale name")
	}
	if _, err := rectangular.ParseOrientation(s.Orientation); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "scale %q", s.Name)
	}
	if !finite(s.Length) || s.Length <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale %q: length must be positive", s.Name)
	}
	if !finite(s.X) || !finite(s.Y) {
		return errors.New(errors.ErrCodeInvalidConfig, "scale %q: origin must be finite", s.Name)
	}
	for _, v := range []*float64{s.Minimum, s.Maximum, s.SnapInterval, s.LabelGap} {
		if v != nil && !finite(*v) {
			return errors.New(errors.ErrCodeInvalidConfig, "scale %q: numeric settings must be finite", s.Name)
		}
	}
	if s.MajorTickInterval < 0 || s.MinorTickInterval < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale %q: tick intervals cannot be negative", s.Name)
	}
	if n := s.majorCount(); n > scaler.MaxTickCount {
		return errors.New(errors.ErrCodeInvalidConfig, "scale %q: %d major ticks exceed the limit of %d", s.Name, n, scaler.MaxTickCount)
	}

	seen := make(map[string]bool, len(s.Indicators))
	for _, ind := range s.Indicators {
		if err := errors.ValidateName(ind.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "scale %q: indicator name", s.Name)
		}
		if seen[ind.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "scale %q: duplicate indicator %q", s.Name, ind.Name)
		}
		seen[ind.Name] = true
		switch ind.Kind {
		case KindMarker, KindBar:
		default:
			return errors.New(errors.ErrCodeInvalidConfig, "scale %q: indicator %q has unknown kind %q (use marker or bar)", s.Name, ind.Name, ind.Kind)
		}
		if ind.Value != nil && math.IsNaN(scaler.Coerce(ind.Value)) {
			return errors.New(errors.ErrCodeInvalidConfig, "scale %q: indicator %q value %v is not a number", s.Name, ind.Name, ind.Value)
		}
		if ind.Size < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "scale %q: indicator %q size cannot be negative", s.Name, ind.Name)
		}
	}
	return nil
}

// majorCount estimates the number of major ticks the scale would generate.
func (s *Scale) majorCount() int {
	lo, hi := s.bounds()
	if !(hi > lo) || s.MajorTickInterval <= 0 {
		return 0
	}
	n := math.Floor((hi-lo)/s.MajorTickInterval) + 1
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

func (s *Scale) bounds() (lo, hi float64) {
	lo, hi = scaler.DefaultMinimum, scaler.DefaultMaximum
	if s.Minimum != nil {
		lo = *s.Minimum
	}
	if s.Maximum != nil {
		hi = *s.Maximum
	}
	return lo, hi
}
