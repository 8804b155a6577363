package cache

// ScopedKeyer wraps a Keyer with a prefix, so several deployments can share
// one Redis instance without colliding:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "mockstudio:staging:")
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

// ArtifactKey generates a prefixed key for exported mockups.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}

// PreviewKey generates a prefixed key for previews.
func (k *ScopedKeyer) PreviewKey(sceneHash string) string {
	return k.prefix + k.inner.PreviewKey(sceneHash)
}

// GarmentKey generates a prefixed key for silhouette layers.
func (k *ScopedKeyer) GarmentKey(view, mode, color string) string {
	return k.prefix + k.inner.GarmentKey(view, mode, color)
}
