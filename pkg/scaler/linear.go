package scaler

import (
	"math"
	"sync"

	"github.com/spf13/cast"

	"github.com/matzehuels/gaugekit/pkg/watch"
)

// Observable properties of a [Linear] scaler.
const (
	PropMinimum           watch.Property = "minimum"
	PropMaximum           watch.Property = "maximum"
	PropMajorTickInterval watch.Property = "majorTickInterval"
	PropMinorTickInterval watch.Property = "minorTickInterval"
	PropSnapInterval      watch.Property = "snapInterval"
)

// Defaults applied by [New].
const (
	DefaultMinimum      = 0.0
	DefaultMaximum      = 100.0
	DefaultSnapInterval = 1.0
)

// MaxTickCount bounds each generated tick sequence.
const MaxTickCount = 100000

// watchedProperties is the contract a listener subscribes to in order to see
// every change affecting ticks or mapping.
var watchedProperties = []watch.Property{
	PropMinimum,
	PropMaximum,
	PropMajorTickInterval,
	PropMinorTickInterval,
	PropSnapInterval,
}

// TickItem describes one generated tick.
type TickItem struct {
	Owner    *Linear `json:"-"`
	IsMinor  bool    `json:"minor"`
	Value    float64 `json:"value"`
	Position float64 `json:"position"`
}

// Option configures a [Linear] scaler at construction.
type Option func(*Linear)

// WithRange sets the minimum and maximum.
func WithRange(minimum, maximum float64) Option {
	return func(s *Linear) { s.minimum, s.maximum = minimum, maximum }
}

// WithSnapInterval sets the snap interval; a non-positive value leaves it unset.
func WithSnapInterval(v float64) Option {
	return func(s *Linear) { s.snap = optional(v) }
}

// WithoutSnap leaves the snap interval unset.
func WithoutSnap() Option {
	return func(s *Linear) { s.snap = math.NaN() }
}

// WithMajorTickInterval sets an explicit major tick interval.
func WithMajorTickInterval(v float64) Option {
	return func(s *Linear) { s.major = optional(v) }
}

// WithMinorTickInterval sets an explicit minor tick interval.
func WithMinorTickInterval(v float64) Option {
	return func(s *Linear) { s.minor = optional(v) }
}

// Linear creates major and minor ticks regularly between a minimum and a
// maximum and converts between values and positions.
//
// Linear is safe for concurrent use. Change notifications are delivered
// after the mutation is complete and the scaler is unlocked, so handlers may
// read the scaler.
type Linear struct {
	mu sync.RWMutex

	minimum float64
	maximum float64

	// NaN when unset.
	snap  float64
	major float64
	minor float64

	// Memoized computed intervals, NaN when invalid.
	computedMajor float64
	computedMinor float64

	majorTicks []TickItem
	minorTicks []TickItem
	stale      bool

	props *watch.Set
}

// New creates a scaler over [0, 100] with a snap interval of 1 and computed
// tick intervals, then applies opts.
func New(opts ...Option) *Linear {
	s := &Linear{
		minimum:       DefaultMinimum,
		maximum:       DefaultMaximum,
		snap:          DefaultSnapInterval,
		major:         math.NaN(),
		minor:         math.NaN(),
		computedMajor: math.NaN(),
		computedMinor: math.NaN(),
		stale:         true,
		props:         watch.NewSet(watchedProperties...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WatchedProperties returns the properties whose changes affect ticks or
// mapping.
func (s *Linear) WatchedProperties() []watch.Property {
	return append([]watch.Property(nil), watchedProperties...)
}

// Watch subscribes h to changes of p.
func (s *Linear) Watch(p watch.Property, h watch.Handler) (*watch.Handle, error) {
	return s.props.Watch(p, h)
}

// Minimum returns the lower bound of the domain.
func (s *Linear) Minimum() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minimum
}

// Maximum returns the upper bound of the domain.
func (s *Linear) Maximum() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maximum
}

// SnapInterval returns the snap interval and whether it is set.
func (s *Linear) SnapInterval() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, !math.IsNaN(s.snap)
}

// MajorTickInterval returns the explicit major interval and whether it is set.
func (s *Linear) MajorTickInterval() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.major, !math.IsNaN(s.major)
}

// MinorTickInterval returns the explicit minor interval and whether it is set.
func (s *Linear) MinorTickInterval() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minor, !math.IsNaN(s.minor)
}

// SetMinimum sets the lower bound.
func (s *Linear) SetMinimum(v float64) {
	s.set(PropMinimum, &s.minimum, v, s.resetComputedLocked)
}

// SetMaximum sets the upper bound.
func (s *Linear) SetMaximum(v float64) {
	s.set(PropMaximum, &s.maximum, v, s.resetComputedLocked)
}

// SetSnapInterval sets the snap interval. A non-positive or NaN value unsets it.
func (s *Linear) SetSnapInterval(v float64) {
	s.set(PropSnapInterval, &s.snap, optional(v), nil)
}

// ClearSnapInterval unsets the snap interval.
func (s *Linear) ClearSnapInterval() {
	s.set(PropSnapInterval, &s.snap, math.NaN(), nil)
}

// SetMajorTickInterval sets an explicit major interval. A non-positive or NaN
// value unsets it.
func (s *Linear) SetMajorTickInterval(v float64) {
	s.set(PropMajorTickInterval, &s.major, optional(v), s.resetComputedLocked)
}

// ClearMajorTickInterval returns to the computed major interval.
func (s *Linear) ClearMajorTickInterval() {
	s.set(PropMajorTickInterval, &s.major, math.NaN(), s.resetComputedLocked)
}

// SetMinorTickInterval sets an explicit minor interval. A non-positive or NaN
// value unsets it.
func (s *Linear) SetMinorTickInterval(v float64) {
	s.set(PropMinorTickInterval, &s.minor, optional(v), s.resetComputedMinorLocked)
}

// ClearMinorTickInterval returns to the computed minor interval.
func (s *Linear) ClearMinorTickInterval() {
	s.set(PropMinorTickInterval, &s.minor, math.NaN(), s.resetComputedMinorLocked)
}

// set assigns v to field, drops the memoized intervals that derive from it,
// marks the ticks stale and notifies watchers. Assigning the current value
// is not a change.
func (s *Linear) set(p watch.Property, field *float64, v float64, invalidate func()) {
	s.mu.Lock()
	old := *field
	if sameValue(old, v) {
		s.mu.Unlock()
		return
	}
	*field = v
	if invalidate != nil {
		invalidate()
	}
	s.stale = true
	s.mu.Unlock()

	s.props.Notify(p, old, v)
}

func (s *Linear) resetComputedLocked() {
	s.computedMajor = math.NaN()
	s.computedMinor = math.NaN()
}

func (s *Linear) resetComputedMinorLocked() {
	s.computedMinor = math.NaN()
}

// ComputedMajorTickInterval returns the explicit major interval if set,
// otherwise a tenth of the span.
func (s *Linear) ComputedMajorTickInterval() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computedMajorLocked()
}

// ComputedMinorTickInterval returns the explicit minor interval if set,
// otherwise a fifth of the computed major interval.
func (s *Linear) ComputedMinorTickInterval() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computedMinorLocked()
}

func (s *Linear) computedMajorLocked() float64 {
	if !math.IsNaN(s.major) {
		return s.major
	}
	if math.IsNaN(s.computedMajor) {
		s.computedMajor = (s.maximum - s.minimum) / 10
	}
	return s.computedMajor
}

func (s *Linear) computedMinorLocked() float64 {
	if !math.IsNaN(s.minor) {
		return s.minor
	}
	if math.IsNaN(s.computedMinor) {
		s.computedMinor = s.computedMajorLocked() / 5
	}
	return s.computedMinor
}

// ComputeTicks creates or re-creates the ticks and returns all of them:
// major ticks in ascending order, then minor ticks grouped by the major
// interval they fall within.
func (s *Linear) ComputeTicks() []TickItem {
	s.mu.Lock()
	s.majorTicks = s.buildMajorTicksLocked()
	s.minorTicks = s.buildMinorTicksLocked()
	s.stale = false
	all := make([]TickItem, 0, len(s.majorTicks)+len(s.minorTicks))
	all = append(all, s.majorTicks...)
	all = append(all, s.minorTicks...)
	s.mu.Unlock()
	return all
}

// MajorTicks returns the major ticks of the last computation.
func (s *Linear) MajorTicks() []TickItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]TickItem(nil), s.majorTicks...)
}

// MinorTicks returns the minor ticks of the last computation.
func (s *Linear) MinorTicks() []TickItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]TickItem(nil), s.minorTicks...)
}

// Stale reports whether a property changed since the last [Linear.ComputeTicks].
func (s *Linear) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stale
}

func (s *Linear) majorCountLocked() int {
	return tickCount(math.Floor((s.maximum-s.minimum)/s.computedMajorLocked()) + 1)
}

func (s *Linear) buildMajorTicksLocked() []TickItem {
	if !(s.maximum > s.minimum) {
		return []TickItem{}
	}
	major := s.computedMajorLocked()
	count := s.majorCountLocked()
	ticks := make([]TickItem, 0, count)
	for i := 0; i < count; i++ {
		ticks = append(ticks, s.tickLocked(s.minimum+float64(i)*major, false))
	}
	return ticks
}

// buildMinorTicksLocked expects the major ticks of the same computation.
func (s *Linear) buildMinorTicksLocked() []TickItem {
	ticks := []TickItem{}
	if !(s.maximum > s.minimum) {
		return ticks
	}
	minor := s.computedMinorLocked()
	perSegment := tickCount(math.Floor(s.computedMajorLocked() / minor))
	for i := 0; i+1 < len(s.majorTicks); i++ {
		for j := 1; j < perSegment; j++ {
			if len(ticks) == MaxTickCount {
				return ticks
			}
			ticks = append(ticks, s.tickLocked(s.majorTicks[i].Value+float64(j)*minor, true))
		}
	}
	return ticks
}

func (s *Linear) tickLocked(v float64, minor bool) TickItem {
	return TickItem{
		Owner:    s,
		IsMinor:  minor,
		Value:    v,
		Position: (v - s.minimum) / (s.maximum - s.minimum),
	}
}

// PositionForValue transforms a value into a relative position between 0
// and 1. Values at or below the minimum, and NaN, map to 0; values at or
// above the maximum map to 1, which wins over 0 on an empty domain.
func (s *Linear) PositionForValue(v float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case math.IsNaN(v) || v <= s.minimum:
		if v >= s.maximum {
			return 1
		}
		return 0
	case v >= s.maximum:
		return 1
	}
	return (v - s.minimum) / (s.maximum - s.minimum)
}

// ValueForPosition transforms a relative position into a value, rounded to
// the nearest multiple of the snap interval from the minimum when a positive
// snap interval is set.
func (s *Linear) ValueForPosition(p float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.minimum + math.Abs(s.minimum-s.maximum)*p
	if !math.IsNaN(s.snap) && s.snap > 0 {
		v = math.Round((v-s.minimum)/s.snap)*s.snap + s.minimum
	}
	return v
}

// NextValidValue steps v up by the snap interval, or by a tenth of the span
// when unset. The result is never below the minimum.
func (s *Linear) NextValidValue(v float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return math.Max(v+s.stepLocked(), s.minimum)
}

// PreviousValidValue steps v down by the snap interval, or by a tenth of the
// span when unset. The result is never below the minimum; it is not clamped
// to the maximum.
func (s *Linear) PreviousValidValue(v float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return math.Max(v-s.stepLocked(), s.minimum)
}

func (s *Linear) stepLocked() float64 {
	if math.IsNaN(s.snap) {
		return (s.maximum - s.minimum) / 10
	}
	return s.snap
}

// FirstValidValue returns the minimum.
func (s *Linear) FirstValidValue() float64 { return s.Minimum() }

// LastValidValue returns the maximum.
func (s *Linear) LastValidValue() float64 { return s.Maximum() }

// Coerce converts loosely typed input (numbers, numeric strings, booleans)
// to a float64. Anything else, including nil, becomes NaN, which
// [Linear.PositionForValue] maps to 0.
func Coerce(v any) float64 {
	if v == nil {
		return math.NaN()
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return f
}

func optional(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return math.NaN()
	}
	return v
}

func sameValue(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func tickCount(f float64) int {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f > MaxTickCount:
		return MaxTickCount
	}
	return int(f)
}
