// Package layer holds the per-zone design layers of a project.
//
// Every print zone has exactly one layer, created with defaults and never
// removed. A [Set] is an immutable snapshot: [Set.Update] and [Set.Reset]
// return a new set and leave the receiver untouched, so readers holding an
// older snapshot never observe partial edits.
//
// The set stores whatever values it is given. Input sources (drag, sliders,
// the HTTP API, project files) clamp at their boundary with the functions in
// this package, usually through [Patch.Clamped]:
//
//	Scale     0.1 … 3
//	Rotation  -180 … 180 degrees
//	X, Y      0 … 100 percent of the zone
//	Opacity   0 … 100 percent
package layer

import (
	"encoding/json"
	"math"

	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
)

// Ranges for layer fields.
const (
	MinScale    = 0.1
	MaxScale    = 3.0
	MinRotation = -180
	MaxRotation = 180
)

// Layer is the design state of one print zone.
type Layer struct {
	ID       string         `json:"id"`
	Zone     garment.ZoneID `json:"zoneId"`
	Image    string         `json:"image,omitempty"` // data URL; empty means no artwork
	Scale    float64        `json:"scale"`
	Rotation int            `json:"rotation"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Opacity  int            `json:"opacity"`
	Visible  bool           `json:"visible"`
}

// New returns the default layer for zone.
func New(zone garment.ZoneID) Layer {
	return Layer{
		ID:       "layer-" + string(zone),
		Zone:     zone,
		Scale:    1,
		Rotation: 0,
		X:        50,
		Y:        50,
		Opacity:  100,
		Visible:  true,
	}
}

// HasImage reports whether the layer carries artwork.
func (l Layer) HasImage() bool { return l.Image != "" }

// Drawable reports whether the layer contributes to a render.
func (l Layer) Drawable() bool { return l.Visible && l.HasImage() }

// Clamped returns l with every numeric field forced into range.
func (l Layer) Clamped() Layer {
	l.Scale = ClampScale(l.Scale)
	l.Rotation = ClampRotation(l.Rotation)
	l.X = ClampPercent(l.X)
	l.Y = ClampPercent(l.Y)
	l.Opacity = ClampOpacity(l.Opacity)
	return l
}

// ClampScale forces s into [MinScale, MaxScale]. NaN becomes 1.
func ClampScale(s float64) float64 {
	if math.IsNaN(s) {
		return 1
	}
	return math.Max(MinScale, math.Min(MaxScale, s))
}

// ClampRotation forces deg into [MinRotation, MaxRotation].
func ClampRotation(deg int) int {
	return min(max(deg, MinRotation), MaxRotation)
}

// ClampPercent forces p into [0, 100]. NaN becomes 50.
func ClampPercent(p float64) float64 {
	if math.IsNaN(p) {
		return 50
	}
	return math.Max(0, math.Min(100, p))
}

// ClampOpacity forces o into [0, 100].
func ClampOpacity(o int) int {
	return min(max(o, 0), 100)
}

// Set is an immutable collection with one layer per print zone, in zone
// declaration order.
type Set struct {
	layers []Layer
}

// NewSet returns a set with a default layer for every zone.
func NewSet() Set {
	ids := garment.ZoneIDs()
	layers := make([]Layer, len(ids))
	for i, id := range ids {
		layers[i] = New(id)
	}
	return Set{layers: layers}
}

func (s Set) index(zone garment.ZoneID) int {
	for i, l := range s.layers {
		if l.Zone == zone {
			return i
		}
	}
	return -1
}

// Get returns the layer for zone. Unknown zones fail with INVALID_ZONE.
func (s Set) Get(zone garment.ZoneID) (Layer, error) {
	i := s.index(zone)
	if i < 0 {
		return Layer{}, errors.New(errors.ErrCodeInvalidZone, "unknown print zone %q", zone)
	}
	return s.layers[i], nil
}

// All returns a copy of every layer in zone declaration order.
func (s Set) All() []Layer {
	out := make([]Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Len returns the number of layers.
func (s Set) Len() int { return len(s.layers) }

// Update applies p to the layer for zone and returns the new set.
// Fields absent from p keep their values.
func (s Set) Update(zone garment.ZoneID, p Patch) (Set, error) {
	i := s.index(zone)
	if i < 0 {
		return s, errors.New(errors.ErrCodeInvalidZone, "unknown print zone %q", zone)
	}
	layers := s.All()
	layers[i] = p.Apply(layers[i])
	return Set{layers: layers}, nil
}

// Reset restores the transform and opacity of the layer for zone. Artwork
// and visibility are kept.
func (s Set) Reset(zone garment.ZoneID) (Set, error) {
	return s.Update(zone, ResetPatch())
}

// Drawable returns the visible layers with artwork among zones, in zone
// declaration order.
func (s Set) Drawable(zones ...garment.ZoneID) []Layer {
	want := make(map[garment.ZoneID]bool, len(zones))
	for _, z := range zones {
		want[z] = true
	}
	var out []Layer
	for _, l := range s.layers {
		if want[l.Zone] && l.Drawable() {
			out = append(out, l)
		}
	}
	return out
}

// HasImage reports whether any layer carries artwork.
func (s Set) HasImage() bool {
	for _, l := range s.layers {
		if l.HasImage() {
			return true
		}
	}
	return false
}

// MarshalJSON encodes the set as an array of layers.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.layers)
}
