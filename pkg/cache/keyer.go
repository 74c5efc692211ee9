package cache

// ArtifactKeyOpts holds the rendering options that change an artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	Background string  `json:"background,omitempty"`
	Detailed   bool    `json:"detailed,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey keys an encoded artifact of a gauge description.
	ArtifactKey(configHash string, opts ArtifactKeyOpts) string
	// TicksKey keys a computed tick table.
	TicksKey(configHash string) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", configHash, opts)
}

// TicksKey implements Keyer.
func (DefaultKeyer) TicksKey(configHash string) string {
	return hashKey("ticks", configHash)
}
