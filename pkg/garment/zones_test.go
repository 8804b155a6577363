package garment

import (
	"fmt"
	"testing"

	"github.com/furiarock/mockstudio/pkg/errors"
)

func TestZonesWithinCanvas(t *testing.T) {
	for _, z := range Zones() {
		if !z.Area.Within(Canvas) {
			t.Errorf("zone %s area %+v outside canvas", z.ID, z.Area)
		}
		if !z.View.Valid() {
			t.Errorf("zone %s has invalid view %q", z.ID, z.View)
		}
	}
}

func TestZonesDeclarationOrder(t *testing.T) {
	want := []ZoneID{FrontCenter, Heart, BackTabloid, SleeveLeft, SleeveRight}
	got := ZoneIDs()
	if len(got) != len(want) {
		t.Fatalf("ZoneIDs() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ZoneIDs()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestZonesReturnsCopy(t *testing.T) {
	zs := Zones()
	zs[0].Area.X = -1
	if Lookup(FrontCenter).Area.X != 300 {
		t.Error("mutating Zones() result changed the registry")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		id   ZoneID
		view View
		area Rect
	}{
		{FrontCenter, Front, Rect{300, 250, 400, 500}},
		{Heart, Front, Rect{580, 280, 120, 120}},
		{BackTabloid, Back, Rect{300, 200, 400, 550}},
		{SleeveLeft, Left, Rect{400, 300, 200, 200}},
		{SleeveRight, Right, Rect{400, 300, 200, 200}},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			z := Lookup(tt.id)
			if z.View != tt.view {
				t.Errorf("View = %s, want %s", z.View, tt.view)
			}
			if z.Area != tt.area {
				t.Errorf("Area = %+v, want %+v", z.Area, tt.area)
			}
		})
	}
}

func TestLookupUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Lookup(unknown) did not panic")
		}
	}()
	Lookup("pocket")
}

func TestZonesForView(t *testing.T) {
	tests := []struct {
		view View
		want []ZoneID
	}{
		{Front, []ZoneID{FrontCenter, Heart}},
		{Back, []ZoneID{BackTabloid}},
		{Left, []ZoneID{SleeveLeft}},
		{Right, []ZoneID{SleeveRight}},
	}

	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			got := ZonesForView(tt.view)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, z := range got {
				if z.ID != tt.want[i] {
					t.Errorf("[%d] = %s, want %s", i, z.ID, tt.want[i])
				}
			}
		})
	}
}

func TestParseZoneID(t *testing.T) {
	if id, err := ParseZoneID("heart"); err != nil || id != Heart {
		t.Errorf("ParseZoneID(heart) = %q, %v", id, err)
	}
	_, err := ParseZoneID("pocket")
	if !errors.Is(err, errors.ErrCodeInvalidZone) {
		t.Errorf("ParseZoneID(pocket) error = %v, want %s", err, errors.ErrCodeInvalidZone)
	}
}

func TestParseView(t *testing.T) {
	for _, v := range Views() {
		got, err := ParseView(string(v))
		if err != nil || got != v {
			t.Errorf("ParseView(%s) = %q, %v", v, got, err)
		}
	}
	if _, err := ParseView("top"); !errors.Is(err, errors.ErrCodeInvalidView) {
		t.Errorf("ParseView(top) error = %v", err)
	}
}

func TestViewFromRotation(t *testing.T) {
	tests := []struct {
		deg  float64
		want View
	}{
		{0, Front},
		{44.9, Front},
		{45, Right},
		{90, Right},
		{134.9, Right},
		{135, Back},
		{180, Back},
		{224.9, Back},
		{225, Left},
		{270, Left},
		{314.9, Left},
		{315, Front},
		{359.9, Front},
		{360, Front},
		{450, Right},
		{-90, Left},
		{-1, Front},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.deg), func(t *testing.T) {
			if got := ViewFromRotation(tt.deg); got != tt.want {
				t.Errorf("ViewFromRotation(%v) = %s, want %s", tt.deg, got, tt.want)
			}
		})
	}
}

func TestViewFromRotationPartition(t *testing.T) {
	counts := map[View]int{}
	for d := 0; d < 360; d++ {
		counts[ViewFromRotation(float64(d))]++
	}
	for _, v := range Views() {
		if counts[v] != 90 {
			t.Errorf("%s covers %d degrees, want 90", v, counts[v])
		}
	}
}

func TestViewRotationRoundTrip(t *testing.T) {
	for _, v := range Views() {
		if got := ViewFromRotation(float64(v.Rotation())); got != v {
			t.Errorf("ViewFromRotation(%s.Rotation()) = %s", v, got)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	if !r.Contains(10, 10) || !r.Contains(30, 30) || !r.Contains(20, 15) {
		t.Error("Contains should include edges and interior")
	}
	if r.Contains(9.9, 20) || r.Contains(20, 30.1) {
		t.Error("Contains should exclude outside points")
	}
}

func ExampleViewFromRotation() {
	for _, deg := range []float64{0, 90, 180, 270, 330} {
		fmt.Println(deg, ViewFromRotation(deg))
	}
	// Output:
	// 0 front
	// 90 right
	// 180 back
	// 270 left
	// 330 front
}

func ExampleLookup() {
	z := Lookup(Heart)
	fmt.Println(z.Name, z.View, z.Area.Width, z.Area.Height)
	// Output: Punto Corazón front 120 120
}
