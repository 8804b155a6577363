// Package placement turns pointer and slider input into layer patches.
//
// The [Controller] has two states. A pointer-down on the selected zone's
// visible artwork starts a drag; each move while dragging yields exactly one
// patch moving the layer by the pointer delta times [Sensitivity]; pointer-up
// or pointer-leave ends the drag. Sliders bypass the state machine but clamp
// to the same ranges.
//
// Pointer positions are in garment unit space (0..1000), the coordinate
// system of the preview SVG's viewBox.
package placement

import (
	"cmp"
	"math"

	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/layer"
	"github.com/furiarock/mockstudio/pkg/render/scene"
)

// Sensitivity maps pointer movement to percentage-of-zone movement.
const Sensitivity = 0.2

// State is the controller state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Point is a pointer position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Controller tracks one drag at a time. The zero value is idle and ready to
// use. A Controller is not safe for concurrent use; sessions serialize
// access.
type Controller struct {
	state  State
	zone   garment.ZoneID
	start  Point
	startX float64
	startY float64
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Zone returns the zone being dragged, or "" when idle.
func (c *Controller) Zone() garment.ZoneID {
	if c.state != Dragging {
		return ""
	}
	return c.zone
}

// PointerDown starts a drag if pt hits l's artwork and l belongs to the
// selected zone, is visible and has an image. p is l's placement in the
// current scene. It reports whether a drag started.
func (c *Controller) PointerDown(l layer.Layer, selected garment.ZoneID, p scene.Placement, pt Point) bool {
	if l.Zone != selected || !l.Visible || !l.HasImage() {
		return false
	}
	if !p.Contains(pt.X, pt.Y) {
		return false
	}
	c.state = Dragging
	c.zone = l.Zone
	c.start = pt
	c.startX, c.startY = l.X, l.Y
	return true
}

// PointerMove returns the patch for a move to pt. It reports false when no
// drag is active.
func (c *Controller) PointerMove(pt Point) (layer.Patch, bool) {
	if c.state != Dragging {
		return layer.Patch{}, false
	}
	x := c.startX + (pt.X-c.start.X)*Sensitivity
	y := c.startY + (pt.Y-c.start.Y)*Sensitivity
	return layer.Patch{X: layer.Ptr(x), Y: layer.Ptr(y)}.Clamped(), true
}

// PointerUp ends any drag.
func (c *Controller) PointerUp() { c.reset() }

// PointerLeave ends any drag.
func (c *Controller) PointerLeave() { c.reset() }

func (c *Controller) reset() {
	*c = Controller{}
}

// Field names a slider.
type Field string

const (
	FieldScale    Field = "scale"
	FieldRotation Field = "rotation"
	FieldX        Field = "x"
	FieldY        Field = "y"
	FieldOpacity  Field = "opacity"
)

// Slider returns the clamped patch for setting field to v. Rotation and
// opacity are rounded to whole numbers.
func Slider(field Field, v float64) (layer.Patch, error) {
	var p layer.Patch
	switch field {
	case FieldScale:
		p.Scale = layer.Ptr(v)
	case FieldRotation:
		p.Rotation = layer.Ptr(round(v))
	case FieldX:
		p.X = layer.Ptr(v)
	case FieldY:
		p.Y = layer.Ptr(v)
	case FieldOpacity:
		p.Opacity = layer.Ptr(round(v))
	default:
		return p, errors.New(errors.ErrCodeInvalidInput, "unknown slider %q", field)
	}
	return p.Clamped(), nil
}

// SliderValues holds the positions of any number of sliders, as submitted
// together by a settings form. Nil sliders are left untouched.
type SliderValues struct {
	Scale    *float64 `json:"scale,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`
}

// Patch runs every set slider through [Slider] and merges the results into
// one clamped patch.
func (v SliderValues) Patch() (layer.Patch, error) {
	var out layer.Patch
	for _, s := range []struct {
		field Field
		value *float64
	}{
		{FieldScale, v.Scale},
		{FieldRotation, v.Rotation},
		{FieldX, v.X},
		{FieldY, v.Y},
		{FieldOpacity, v.Opacity},
	} {
		if s.value == nil {
			continue
		}
		p, err := Slider(s.field, *s.value)
		if err != nil {
			return layer.Patch{}, err
		}
		out.Scale = cmp.Or(p.Scale, out.Scale)
		out.Rotation = cmp.Or(p.Rotation, out.Rotation)
		out.X = cmp.Or(p.X, out.X)
		out.Y = cmp.Or(p.Y, out.Y)
		out.Opacity = cmp.Or(p.Opacity, out.Opacity)
	}
	return out, nil
}

// round converts a slider value to an int, saturating far outside any
// layer range.
func round(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(math.Max(-1e6, math.Min(1e6, v))))
}
