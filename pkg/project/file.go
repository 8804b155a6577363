package project

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/furiarock/mockstudio/pkg/artwork"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/layer"
)

// File is the on-disk TOML form of a project, used by the CLI:
//
//	name = "Tour 2025"
//	color = "#1f2937"
//	size = "L"
//	view = "front"
//
//	[[layer]]
//	zone = "front_center"
//	image = "art/logo.png"
//	scale = 1.2
//	x = 50
//	y = 40
//
// Image paths are relative to the project file.
type File struct {
	Name      string      `toml:"name"`
	Color     string      `toml:"color"`
	Size      string      `toml:"size"`
	View      string      `toml:"view"`
	Zone      string      `toml:"zone"`
	Watermark *bool       `toml:"watermark"`
	Layers    []LayerFile `toml:"layer"`
}

// LayerFile is one [[layer]] table.
type LayerFile struct {
	Zone     string   `toml:"zone"`
	Image    string   `toml:"image"`
	Scale    *float64 `toml:"scale"`
	Rotation *int     `toml:"rotation"`
	X        *float64 `toml:"x"`
	Y        *float64 `toml:"y"`
	Opacity  *int     `toml:"opacity"`
	Visible  *bool    `toml:"visible"`
}

// ParseFile decodes TOML project data. Unknown keys are rejected so typos
// do not silently fall back to defaults.
func ParseFile(data []byte) (File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidProject, err, "parse project file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return File{}, errors.New(errors.ErrCodeInvalidProject, "unknown key %q in project file", undecoded[0].String())
	}
	return f, nil
}

// Load reads a project file and builds its state. Artwork is read relative
// to the file's directory and every layer value is clamped.
func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "project file %s", path)
		}
		return State{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read project file")
	}
	f, err := ParseFile(data)
	if err != nil {
		return State{}, err
	}
	return f.State(filepath.Dir(path), artwork.Load)
}

// State builds the project state from f. loadImage turns an artwork path,
// already joined with dir, into a data URL.
func (f File) State(dir string, loadImage func(path string) (string, error)) (State, error) {
	p := Patch{Name: &f.Name, ShowWatermark: f.Watermark}
	if f.Color != "" {
		p.Color = &f.Color
	}
	if f.Size != "" {
		p.Size = &f.Size
	}
	if f.Zone != "" {
		p.Zone = &f.Zone
	}
	if f.View != "" {
		p.View = &f.View
	}
	s, err := p.Apply(New())
	if err != nil {
		return State{}, err
	}

	seen := map[garment.ZoneID]bool{}
	for _, lf := range f.Layers {
		zone, err := garment.ParseZoneID(lf.Zone)
		if err != nil {
			return State{}, err
		}
		if seen[zone] {
			return State{}, errors.New(errors.ErrCodeInvalidProject, "zone %s appears twice", zone)
		}
		seen[zone] = true

		lp := layer.Patch{
			Scale:    lf.Scale,
			Rotation: lf.Rotation,
			X:        lf.X,
			Y:        lf.Y,
			Opacity:  lf.Opacity,
			Visible:  lf.Visible,
		}
		if lf.Image != "" {
			path := lf.Image
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}
			img, err := loadImage(path)
			if err != nil {
				return State{}, err
			}
			lp.Image = &img
		}
		if s, err = s.UpdateLayer(zone, lp.Clamped()); err != nil {
			return State{}, err
		}
	}
	return s, nil
}
