package garment

import (
	"math"

	"github.com/furiarock/mockstudio/pkg/errors"
)

// UnitSize is the side length of the square coordinate space every zone,
// silhouette path and pointer position is expressed in.
const UnitSize = 1000.0

// View is one of the four camera angles the garment is drawn from.
type View string

const (
	Front View = "front"
	Right View = "right"
	Back  View = "back"
	Left  View = "left"
)

// Views returns all views in rotation order (0°, 90°, 180°, 270°).
func Views() []View {
	return []View{Front, Right, Back, Left}
}

// Valid reports whether v is one of the four known views.
func (v View) Valid() bool {
	switch v {
	case Front, Right, Back, Left:
		return true
	}
	return false
}

// Rotation returns the rotation slider value that shows v.
func (v View) Rotation() int {
	switch v {
	case Right:
		return 90
	case Back:
		return 180
	case Left:
		return 270
	default:
		return 0
	}
}

// ParseView converts an external string into a View.
func ParseView(s string) (View, error) {
	v := View(s)
	if !v.Valid() {
		return "", errors.New(errors.ErrCodeInvalidView, "unknown view %q (want front, right, back or left)", s)
	}
	return v, nil
}

// ViewFromRotation maps a rotation in degrees to the camera angle it shows.
// Angles outside [0, 360) are normalized first, so the mapping is total.
//
//	[0,45) ∪ [315,360) → front
//	[45,135)           → right
//	[135,225)          → back
//	[225,315)          → left
func ViewFromRotation(deg float64) View {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	switch {
	case d >= 45 && d < 135:
		return Right
	case d >= 135 && d < 225:
		return Back
	case d >= 225 && d < 315:
		return Left
	default:
		return Front
	}
}

// Rect is an axis-aligned rectangle in unit space.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the point (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Within reports whether r lies entirely inside outer.
func (r Rect) Within(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.X+r.Width <= outer.X+outer.Width &&
		r.Y+r.Height <= outer.Y+outer.Height
}

// Canvas is the full unit-space drawing area.
var Canvas = Rect{Width: UnitSize, Height: UnitSize}

// ZoneID identifies a print zone.
type ZoneID string

const (
	FrontCenter ZoneID = "front_center"
	Heart       ZoneID = "heart"
	BackTabloid ZoneID = "back_tabloid"
	SleeveLeft  ZoneID = "sleeve_left"
	SleeveRight ZoneID = "sleeve_right"
)

// PrintZone is a named rectangular region on one view of the garment
// where artwork may be placed.
type PrintZone struct {
	ID   ZoneID `json:"id"`
	Name string `json:"name"`
	View View   `json:"view"`
	Area Rect   `json:"area"`
}

// zones is declared in export draw order.
var zones = []PrintZone{
	{ID: FrontCenter, Name: "Frente (Centro)", View: Front, Area: Rect{X: 300, Y: 250, Width: 400, Height: 500}},
	{ID: Heart, Name: "Punto Corazón", View: Front, Area: Rect{X: 580, Y: 280, Width: 120, Height: 120}},
	{ID: BackTabloid, Name: "Espalda", View: Back, Area: Rect{X: 300, Y: 200, Width: 400, Height: 550}},
	{ID: SleeveLeft, Name: "Manga Izquierda", View: Left, Area: Rect{X: 400, Y: 300, Width: 200, Height: 200}},
	{ID: SleeveRight, Name: "Manga Derecha", View: Right, Area: Rect{X: 400, Y: 300, Width: 200, Height: 200}},
}

var zoneIndex = func() map[ZoneID]int {
	m := make(map[ZoneID]int, len(zones))
	for i, z := range zones {
		m[z.ID] = i
	}
	return m
}()

// DefaultZone is the zone selected in a fresh project.
const DefaultZone = FrontCenter

// Zones returns every print zone in declaration order.
func Zones() []PrintZone {
	out := make([]PrintZone, len(zones))
	copy(out, zones)
	return out
}

// ZoneIDs returns the IDs of every print zone in declaration order.
func ZoneIDs() []ZoneID {
	ids := make([]ZoneID, len(zones))
	for i, z := range zones {
		ids[i] = z.ID
	}
	return ids
}

// ZonesForView returns the zones drawn on v, in declaration order.
func ZonesForView(v View) []PrintZone {
	var out []PrintZone
	for _, z := range zones {
		if z.View == v {
			out = append(out, z)
		}
	}
	return out
}

// Lookup returns the zone for id. Internal callers only hold IDs obtained
// from ParseZoneID or the constants above, so an unknown id is a programming
// error and panics.
func Lookup(id ZoneID) PrintZone {
	i, ok := zoneIndex[id]
	if !ok {
		panic("garment: unknown zone " + string(id))
	}
	return zones[i]
}

// Valid reports whether id names a registered zone.
func (id ZoneID) Valid() bool {
	_, ok := zoneIndex[id]
	return ok
}

// ParseZoneID converts an external string into a ZoneID.
func ParseZoneID(s string) (ZoneID, error) {
	id := ZoneID(s)
	if !id.Valid() {
		return "", errors.New(errors.ErrCodeInvalidZone, "unknown print zone %q", s)
	}
	return id, nil
}
