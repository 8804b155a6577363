package session

import (
	"bytes"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/furiarock/mockstudio/pkg/artwork"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/layer"
	"github.com/furiarock/mockstudio/pkg/placement"
	"github.com/furiarock/mockstudio/pkg/project"
)

func artURL(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatal(err)
	}
	u, err := artwork.Encode(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func withArtwork(t *testing.T, sess *Session, zone garment.ZoneID) {
	t.Helper()
	url := artURL(t)
	if _, err := sess.Update(func(s project.State) (project.State, error) {
		return s.UpdateLayer(zone, layer.UploadPatch(url))
	}); err != nil {
		t.Fatal(err)
	}
}

func TestStoreLifecycle(t *testing.T) {
	m := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	sess := m.Create()
	if sess.ID == "" || m.Len() != 1 {
		t.Fatalf("Create: id=%q len=%d", sess.ID, m.Len())
	}
	got, err := m.Get(sess.ID)
	if err != nil || got != sess {
		t.Fatalf("Get = %v, %v", got, err)
	}

	// each Get slides the expiry
	now = now.Add(50 * time.Second)
	if _, err := m.Get(sess.ID); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}
	now = now.Add(50 * time.Second)
	if _, err := m.Get(sess.ID); err != nil {
		t.Fatalf("Get after touch: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := m.Get(sess.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("expired Get: err = %v", err)
	}
	if n := m.Cleanup(); n != 1 || m.Len() != 0 {
		t.Errorf("Cleanup removed %d, len %d", n, m.Len())
	}

	if _, err := m.Get("nope"); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("unknown id: err = %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	m := NewMemoryStore(0)
	sess := m.Create()
	m.Delete(sess.ID)
	if _, err := m.Get(sess.ID); err == nil {
		t.Error("deleted session still found")
	}
}

func TestUpdateFailureKeepsState(t *testing.T) {
	sess := NewMemoryStore(0).Create()
	before := sess.Snapshot()

	_, err := sess.Update(func(s project.State) (project.State, error) {
		s.Name = "changed"
		return s.SelectZone("collar")
	})
	if !errors.Is(err, errors.ErrCodeInvalidZone) {
		t.Fatalf("err = %v", err)
	}
	if sess.Snapshot().Name != before.Name {
		t.Error("failed update leaked a change")
	}
}

func TestPointerDrag(t *testing.T) {
	sess := NewMemoryStore(0).Create()
	withArtwork(t, sess, garment.FrontCenter)

	steps := []struct {
		ev    PointerEvent
		state placement.State
		x, y  float64
	}{
		{PointerEvent{PointerDown, 500, 500}, placement.Dragging, 50, 50},
		{PointerEvent{PointerMove, 550, 520}, placement.Dragging, 60, 54},
		{PointerEvent{PointerUp, 0, 0}, placement.Idle, 60, 54},
		{PointerEvent{PointerMove, 900, 900}, placement.Idle, 60, 54},
	}
	for i, st := range steps {
		s, ds, err := sess.Pointer(st.ev)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		l, _ := s.Layers.Get(garment.FrontCenter)
		if ds != st.state || l.X != st.x || l.Y != st.y {
			t.Errorf("step %d (%s): state=%s pos=(%g,%g), want %s (%g,%g)", i, st.ev.Kind, ds, l.X, l.Y, st.state, st.x, st.y)
		}
	}
}

func TestPointerDownIgnored(t *testing.T) {
	tests := []struct {
		name  string
		setup func(project.State) (project.State, error)
		at    PointerEvent
	}{
		{"miss", nil, PointerEvent{PointerDown, 50, 50}},
		{"comparing", func(s project.State) (project.State, error) {
			s.Comparing = true
			return s, nil
		}, PointerEvent{PointerDown, 500, 500}},
		{"other view", func(s project.State) (project.State, error) {
			return s.SetView(garment.Back), nil
		}, PointerEvent{PointerDown, 500, 500}},
		{"hidden", func(s project.State) (project.State, error) {
			return s.UpdateLayer(garment.FrontCenter, layer.Patch{Visible: layer.Ptr(false)})
		}, PointerEvent{PointerDown, 500, 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := NewMemoryStore(0).Create()
			withArtwork(t, sess, garment.FrontCenter)
			if tt.setup != nil {
				if _, err := sess.Update(tt.setup); err != nil {
					t.Fatal(err)
				}
			}
			_, ds, err := sess.Pointer(tt.at)
			if err != nil {
				t.Fatal(err)
			}
			if ds != placement.Idle {
				t.Errorf("drag started")
			}
		})
	}
}

func TestPointerUnknownKind(t *testing.T) {
	sess := NewMemoryStore(0).Create()
	if _, _, err := sess.Pointer(PointerEvent{Kind: "wheel"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v", err)
	}
}

func TestReset(t *testing.T) {
	sess := NewMemoryStore(0).Create()
	withArtwork(t, sess, garment.FrontCenter)
	if _, ds, _ := sess.Pointer(PointerEvent{PointerDown, 500, 500}); ds != placement.Dragging {
		t.Fatal("drag did not start")
	}

	s := sess.Reset()
	if s.HasWork() {
		t.Error("reset kept artwork")
	}
	if _, ds, _ := sess.Pointer(PointerEvent{PointerMove, 600, 600}); ds != placement.Idle {
		t.Error("reset kept the drag")
	}
}

func TestConcurrentUpdates(t *testing.T) {
	sess := NewMemoryStore(0).Create()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = sess.Update(func(s project.State) (project.State, error) {
				l, _ := s.Layers.Get(garment.Heart)
				return s.UpdateLayer(garment.Heart, layer.Patch{Rotation: layer.Ptr(l.Rotation + 1)})
			})
		}()
	}
	wg.Wait()
	l, _ := sess.Snapshot().Layers.Get(garment.Heart)
	if l.Rotation != 50 {
		t.Errorf("rotation = %d, want 50 (lost updates)", l.Rotation)
	}
}
