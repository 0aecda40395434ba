package view

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestCameraProjection(t *testing.T) {
	cam := NewCamera(1280, 720, 0, 4, 32)

	cases := []struct {
		name   string
		world  cp.Vector
		sx, sy float64
	}{
		{"centre", cp.Vector{X: 0, Y: 4}, 640, 360},
		{"right_one_unit", cp.Vector{X: 1, Y: 4}, 672, 360},
		{"up_is_screen_up", cp.Vector{X: 0, Y: 5}, 640, 328},
		{"origin", cp.Vector{X: 0, Y: 0}, 640, 488},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sx, sy := cam.WorldToScreen(c.world)
			if math.Abs(sx-c.sx) > 1e-9 || math.Abs(sy-c.sy) > 1e-9 {
				t.Fatalf("expected (%v, %v), got (%v, %v)", c.sx, c.sy, sx, sy)
			}
			back := cam.ScreenToWorld(sx, sy)
			if !near(back, c.world) {
				t.Fatalf("round trip gave %v", back)
			}
		})
	}
}

func TestCameraVisibility(t *testing.T) {
	cam := NewCamera(1280, 720, 0, 4, 32)
	v := cam.ViewBounds()
	if math.Abs(v.L+20) > 1e-9 || math.Abs(v.R-20) > 1e-9 || math.Abs(v.B-(4-11.25)) > 1e-9 || math.Abs(v.T-(4+11.25)) > 1e-9 {
		t.Fatalf("unexpected view bounds %+v", v)
	}
	if !cam.Visible(cp.BB{L: -1, B: 8, R: 1, T: 10}) {
		t.Fatalf("spawn point should be visible")
	}
	if cam.Visible(cp.BB{L: -1, B: -200, R: 1, T: -199}) {
		t.Fatalf("a body far below the view should be culled")
	}
}
