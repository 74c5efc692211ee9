// Package scaler maps a numeric domain to tick sets and normalized positions.
//
// A [Linear] scaler places major ticks regularly between a minimum and a
// maximum, minor ticks regularly between consecutive major ticks, and converts
// between domain values and relative positions in [0, 1]. It has no rendering
// dependency; scales in package scale delegate their value/position mapping
// to it and subscribe to its [Linear.WatchedProperties] to learn when cached
// geometry is stale.
//
// # Intervals
//
// The major and minor tick intervals are optional. When unset, the major
// interval is a tenth of the span and the minor interval a fifth of the
// major one. Computed intervals are memoized and the memo is dropped whenever
// the minimum, the maximum or an explicit interval they derive from changes.
//
// # Ticks
//
// [Linear.ComputeTicks] rebuilds both tick sequences. Ticks are stale after
// any mutation until the next computation, which [Linear.Stale] reports. An
// inverted or empty domain produces no ticks and no error.
//
//	s := scaler.New(scaler.WithRange(0, 100))
//	ticks := s.ComputeTicks()     // 11 major ticks, then 40 minor ticks
//	s.PositionForValue(25)        // 0.25
//	s.ValueForPosition(0.333)     // 33 (snapped to the default interval of 1)
package scaler
