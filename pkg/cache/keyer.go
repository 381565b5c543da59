package cache

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered output of a props hash.
	ArtifactKey(propsHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	IDPrefix string  `json:"id_prefix,omitempty"`
	Layout   string  `json:"layout,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey generates a key for artifact caching. The format stays
// readable in the key so entries can be inspected by prefix.
func (DefaultKeyer) ArtifactKey(propsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, propsHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix.
//
// Example usage:
//
//	// Keys of a server build
//	k := NewScopedKeyer(NewDefaultKeyer(), "bigvalue:v1.2.0:")
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
func (k *ScopedKeyer) ArtifactKey(propsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(propsHash, opts)
}
