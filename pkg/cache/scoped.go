package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The render server uses it to keep its entries apart from CLI entries when
// both share one Redis instance.
//
// Example usage:
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "serve:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(configHash, opts)
}

// TicksKey generates a prefixed key for tick table caching.
func (k *ScopedKeyer) TicksKey(configHash string) string {
	return k.prefix + k.inner.TicksKey(configHash)
}
