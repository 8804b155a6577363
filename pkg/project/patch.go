package project

import (
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
)

// Patch is a partial update of the garment settings. Nil fields are left
// unchanged.
type Patch struct {
	Name          *string  `json:"name,omitempty"`
	Color         *string  `json:"color,omitempty"`
	Size          *string  `json:"size,omitempty"`
	View          *string  `json:"view,omitempty"`
	Rotation      *float64 `json:"rotation,omitempty"`
	Zone          *string  `json:"zone,omitempty"`
	ShowGuides    *bool    `json:"showGuides,omitempty"`
	ShowWatermark *bool    `json:"showWatermark,omitempty"`
	Comparing     *bool    `json:"comparing,omitempty"`
}

// Apply validates p and merges it into s. Nothing is applied if any field
// is invalid.
//
// Zone selection turns the garment to the zone's view, then View and
// Rotation, if also present, override it.
func (p Patch) Apply(s State) (State, error) {
	next := s

	if p.Name != nil {
		if err := errors.ValidateProjectName(*p.Name); err != nil {
			return s, err
		}
		next.Name = *p.Name
	}
	if p.Color != nil {
		c, err := garment.NormalizeColor(*p.Color)
		if err != nil {
			return s, err
		}
		next.Color = c
	}
	if p.Size != nil {
		size, err := garment.ParseSize(*p.Size)
		if err != nil {
			return s, err
		}
		next.Size = size
	}
	if p.Zone != nil {
		id, err := garment.ParseZoneID(*p.Zone)
		if err != nil {
			return s, err
		}
		if next, err = next.SelectZone(id); err != nil {
			return s, err
		}
	}
	if p.View != nil {
		v, err := garment.ParseView(*p.View)
		if err != nil {
			return s, err
		}
		next = next.SetView(v)
	}
	if p.Rotation != nil {
		next = next.SetRotation(*p.Rotation)
	}
	if p.ShowGuides != nil {
		next.ShowGuides = *p.ShowGuides
	}
	if p.ShowWatermark != nil {
		next.ShowWatermark = *p.ShowWatermark
	}
	if p.Comparing != nil {
		next.Comparing = *p.Comparing
	}
	return next, nil
}
