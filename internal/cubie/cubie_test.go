package cubie

import (
	"testing"

	"github.com/SeamusWaldron/cubeengine/internal/geom"
)

func TestNewSet_IndexesByID(t *testing.T) {
	s := NewSet([]Cubie{
		{ID: "a", Name: "Cube.001"},
		{ID: "b", Name: "Cube.002"},
		{ID: "a", Name: "duplicate"},
	})
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	i, ok := s.Index("b")
	if !ok || i != 1 {
		t.Errorf("Index(b) = %d,%v, want 1,true", i, ok)
	}
	c, ok := s.Get("a")
	if !ok || c.Name != "Cube.001" {
		t.Errorf("Get(a) = %+v, want first occurrence", c)
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := NewSet([]Cubie{{ID: "a"}})
	snap := s.Snapshot()
	snap[0].Position = geom.Vec3{X: 9}

	s.SetTransform(0, geom.Transform{Position: geom.Vec3{Y: 2}, Rotation: geom.Identity})
	if got := s.At(0).Position; got != (geom.Vec3{Y: 2}) {
		t.Errorf("At(0).Position = %v, want (0, 2, 0)", got)
	}
	if snap[0].Position != (geom.Vec3{X: 9}) {
		t.Error("snapshot should not observe later writes")
	}
}
