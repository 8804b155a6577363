package cache

// Keyer builds cache keys. Implementations must be deterministic: equal
// inputs always give equal keys.
type Keyer interface {
	// ArtifactKey keys an exported mockup.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string

	// PreviewKey keys a composed SVG preview.
	PreviewKey(sceneHash string) string

	// GarmentKey keys a standalone silhouette layer.
	GarmentKey(view, mode, color string) string
}

// ArtifactKeyOpts are the export options that change the output bytes.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Size   int    `json:"size"`
}

// DefaultKeyer hashes key components under fixed prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

// PreviewKey returns "preview:<hash>".
func (DefaultKeyer) PreviewKey(sceneHash string) string {
	return hashKey("preview", sceneHash)
}

// GarmentKey returns "garment:<view>:<mode>:<color>". The components are
// short and already validated, so they are kept readable.
func (DefaultKeyer) GarmentKey(view, mode, color string) string {
	return "garment:" + view + ":" + mode + ":" + color
}
