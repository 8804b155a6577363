package cli

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/furiarock/mockstudio/pkg/artwork"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/layer"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m viewPicker, keys ...string) (viewPicker, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(viewPicker)
	}
	return m, cmd
}

func TestViewPickerStartsOnInitial(t *testing.T) {
	m := newViewPicker(layer.NewSet(), garment.Back)
	if m.views[m.cursor] != garment.Back {
		t.Errorf("cursor on %s, want back", m.views[m.cursor])
	}
}

func TestViewPickerNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want garment.View
	}{
		{"enter keeps initial", []string{"enter"}, garment.Front},
		{"down", []string{"down", "enter"}, garment.Views()[1]},
		{"j", []string{"j", "j", "enter"}, garment.Views()[2]},
		{"up wraps", []string{"up", "enter"}, garment.Views()[len(garment.Views())-1]},
		{"full circle", []string{"down", "down", "down", "down", "enter"}, garment.Front},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := press(newViewPicker(layer.NewSet(), garment.Front), tt.keys...)
			if m.selected == nil || *m.selected != tt.want {
				t.Fatalf("selected = %v, want %s", m.selected, tt.want)
			}
			if cmd == nil {
				t.Error("enter should quit the program")
			}
		})
	}
}

func TestViewPickerQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m, cmd := press(newViewPicker(layer.NewSet(), garment.Front), k)
		if m.selected != nil || cmd == nil {
			t.Errorf("%s: selected=%v cmd=%v", k, m.selected, cmd)
		}
	}
}

func TestViewPickerMarksArtwork(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	url, err := artwork.Encode(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	set, err := layer.NewSet().Update(garment.BackTabloid, layer.UploadPatch(url))
	if err != nil {
		t.Fatal(err)
	}

	m := newViewPicker(set, garment.Front)
	if m.designCount(garment.Back) != 1 || m.designCount(garment.Front) != 0 {
		t.Errorf("design counts: back=%d front=%d", m.designCount(garment.Back), m.designCount(garment.Front))
	}
	view := m.View()
	for _, want := range []string{"Select View", "Espalda", "Frente (Centro)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
