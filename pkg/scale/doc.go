// Package scale implements the scale component of a gauge.
//
// A [Scale] owns a [Scaler] by reference, a set of named indicators and three
// rendering sub-groups (background, ticks and foreground, painted in that
// order). It keeps its cached geometry honest through property observation:
// assigning any of its own properties, or changing any watched property of
// its scaler, marks the scale dirty and notifies [Scale.OnInvalidate]
// subscribers synchronously, before the assignment returns.
//
// The base Scale knows no geometry. Concrete geometries (see package
// rectangular) embed it, draw ticks in [Scale.RefreshRendering] and override
// the valid-value stepping methods, which the base reports as absent.
//
// # Lifecycle
//
//	s := scale.New(scaler.New(scaler.WithRange(0, 50)))
//	s.Attach(gauge, group)            // sub-groups are created here
//	s.AddIndicator("needle", m, false) // m receives its own group and s
//	s.RemoveIndicator("needle")        // group removed at once, listeners cut
//
// A Scale is confined to the goroutine that drives it.
package scale
