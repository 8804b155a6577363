// Package project holds the root state of one mockup project: the garment
// settings and the per-zone layers.
//
// State is a plain value. Every change goes through a function that returns
// a new State, so a session can hand out snapshots without copying and an
// export keeps working on the snapshot it captured even if the project is
// reset meanwhile.
package project

import (
	"math"
	"strings"

	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/layer"
)

// State is the root state of a project.
type State struct {
	Name          string         `json:"name"`
	Color         string         `json:"color"`
	Size          garment.Size   `json:"size"`
	View          garment.View   `json:"view"`
	Rotation      float64        `json:"rotation"` // 360° slider position, degrees
	SelectedZone  garment.ZoneID `json:"selectedZone"`
	ShowGuides    bool           `json:"showGuides"`
	ShowWatermark bool           `json:"showWatermark"`
	Comparing     bool           `json:"comparing"`
	Layers        layer.Set      `json:"layers"`
}

// New returns the state of a fresh project.
func New() State {
	return State{
		Color:         garment.DefaultColor,
		Size:          garment.DefaultSize,
		View:          garment.Front,
		SelectedZone:  garment.DefaultZone,
		ShowGuides:    true,
		ShowWatermark: true,
		Layers:        layer.NewSet(),
	}
}

// HasWork reports whether resetting s would lose anything: a non-blank name
// or any uploaded artwork.
func (s State) HasWork() bool {
	return strings.TrimSpace(s.Name) != "" || s.Layers.HasImage()
}

// SelectedLayer returns the layer of the selected zone.
func (s State) SelectedLayer() layer.Layer {
	l, err := s.Layers.Get(s.SelectedZone)
	if err != nil {
		return layer.New(s.SelectedZone)
	}
	return l
}

// SelectZone selects zone and turns the garment to the zone's view.
func (s State) SelectZone(zone garment.ZoneID) (State, error) {
	if !zone.Valid() {
		return s, errors.New(errors.ErrCodeInvalidZone, "unknown print zone %q", zone)
	}
	s.SelectedZone = zone
	return s.SetView(garment.Lookup(zone).View), nil
}

// SetView turns the garment to v and moves the rotation slider to the view's
// canonical angle.
func (s State) SetView(v garment.View) State {
	s.View = v
	s.Rotation = float64(v.Rotation())
	return s
}

// SetRotation moves the 360° slider to deg and derives the view from it.
// The slider keeps the exact angle; only the view snaps.
func (s State) SetRotation(deg float64) State {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	s.Rotation = deg
	s.View = garment.ViewFromRotation(deg)
	return s
}

// UpdateLayer applies p to the layer of zone.
func (s State) UpdateLayer(zone garment.ZoneID, p layer.Patch) (State, error) {
	layers, err := s.Layers.Update(zone, p)
	if err != nil {
		return s, err
	}
	s.Layers = layers
	return s, nil
}

// ResetLayer restores the transform of the layer of zone.
func (s State) ResetLayer(zone garment.ZoneID) (State, error) {
	layers, err := s.Layers.Reset(zone)
	if err != nil {
		return s, err
	}
	s.Layers = layers
	return s, nil
}

// ExportBlocked reports why s cannot be exported, or nil.
func (s State) ExportBlocked() error {
	if s.Comparing {
		return errors.New(errors.ErrCodeConflict, "leave comparison mode before exporting")
	}
	return nil
}
