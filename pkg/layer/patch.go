package layer

// Patch is a partial layer update. Nil fields are left unchanged.
type Patch struct {
	Image      *string  `json:"image,omitempty"`
	ClearImage bool     `json:"clearImage,omitempty"`
	Scale      *float64 `json:"scale,omitempty"`
	Rotation   *int     `json:"rotation,omitempty"`
	X          *float64 `json:"x,omitempty"`
	Y          *float64 `json:"y,omitempty"`
	Opacity    *int     `json:"opacity,omitempty"`
	Visible    *bool    `json:"visible,omitempty"`
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T { return &v }

// Empty reports whether p changes nothing.
func (p Patch) Empty() bool {
	return p.Image == nil && !p.ClearImage && p.Scale == nil && p.Rotation == nil &&
		p.X == nil && p.Y == nil && p.Opacity == nil && p.Visible == nil
}

// Apply returns l with p merged in. Values are taken as given.
func (p Patch) Apply(l Layer) Layer {
	if p.ClearImage {
		l.Image = ""
	}
	if p.Image != nil {
		l.Image = *p.Image
	}
	if p.Scale != nil {
		l.Scale = *p.Scale
	}
	if p.Rotation != nil {
		l.Rotation = *p.Rotation
	}
	if p.X != nil {
		l.X = *p.X
	}
	if p.Y != nil {
		l.Y = *p.Y
	}
	if p.Opacity != nil {
		l.Opacity = *p.Opacity
	}
	if p.Visible != nil {
		l.Visible = *p.Visible
	}
	return l
}

// Clamped returns a copy of p with every numeric field forced into range.
func (p Patch) Clamped() Patch {
	if p.Scale != nil {
		p.Scale = Ptr(ClampScale(*p.Scale))
	}
	if p.Rotation != nil {
		p.Rotation = Ptr(ClampRotation(*p.Rotation))
	}
	if p.X != nil {
		p.X = Ptr(ClampPercent(*p.X))
	}
	if p.Y != nil {
		p.Y = Ptr(ClampPercent(*p.Y))
	}
	if p.Opacity != nil {
		p.Opacity = Ptr(ClampOpacity(*p.Opacity))
	}
	return p
}

// UploadPatch sets new artwork and re-centers it at scale 1, keeping
// opacity and visibility.
func UploadPatch(image string) Patch {
	return Patch{
		Image:    &image,
		Scale:    Ptr(1.0),
		Rotation: Ptr(0),
		X:        Ptr(50.0),
		Y:        Ptr(50.0),
	}
}

// ResetPatch restores position, scale, rotation and opacity while keeping
// the artwork.
func ResetPatch() Patch {
	return Patch{
		Scale:    Ptr(1.0),
		Rotation: Ptr(0),
		X:        Ptr(50.0),
		Y:        Ptr(50.0),
		Opacity:  Ptr(100),
	}
}

// RemoveImagePatch removes the artwork.
func RemoveImagePatch() Patch {
	return Patch{ClearImage: true}
}
