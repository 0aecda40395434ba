package view

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shapefall/physics"
)

const eps = 1e-9

func near(a, b cp.Vector) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestOutlineForDispatch(t *testing.T) {
	pos := cp.Vector{X: 1, Y: 2}
	cases := []struct {
		name        string
		def         physics.ShapeDef
		wantRects   int
		wantCircles int
	}{
		{"box", physics.Box(0.5, 0.5), 1, 0},
		{"sphere", physics.Sphere(0.5), 0, 1},
		{"cylinder", physics.Cylinder(0.5, 1), 1, 0},
		{"capsule", physics.Capsule(0.5, 1), 1, 2},
		{"unknown", physics.ShapeDef{Kind: physics.ShapeUnknown, Radius: 1}, 0, 0},
		{"out_of_range", physics.ShapeDef{Kind: physics.ShapeKind(42), Radius: 1}, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := OutlineFor(c.def, pos, 0.3)
			if len(o.Rects) != c.wantRects || len(o.Circles) != c.wantCircles {
				t.Fatalf("expected %d rects and %d circles, got %d and %d", c.wantRects, c.wantCircles, len(o.Rects), len(o.Circles))
			}
			if c.wantRects+c.wantCircles == 0 {
				if !o.Empty() || o.Kind != physics.ShapeUnknown {
					t.Fatalf("unknown shapes must produce an empty outline, got %+v", o)
				}
				return
			}
			if o.Kind != c.def.Kind {
				t.Fatalf("expected kind %s, got %s", c.def.Kind, o.Kind)
			}
		})
	}
}

func TestOutlineDimensions(t *testing.T) {
	pos := cp.Vector{X: 0, Y: 0}

	box := OutlineFor(physics.Box(2.5, 0.5), pos, 0)
	corners := box.Rects[0].Corners()
	if !near(corners[0], cp.Vector{X: -2.5, Y: -0.5}) || !near(corners[2], cp.Vector{X: 2.5, Y: 0.5}) {
		t.Fatalf("unexpected box corners %v", corners)
	}

	cyl := OutlineFor(physics.Cylinder(0.5, 1), pos, 0)
	if r := cyl.Rects[0]; r.HalfWidth != 0.5 || r.HalfHeight != 1 {
		t.Fatalf("cylinder should draw radius x half height, got %+v", r)
	}

	sphere := OutlineFor(physics.Sphere(0.5), pos, 1.2)
	if c := sphere.Circles[0]; c.Radius != 0.5 || c.Segments != CircleSegments || !near(c.Center, pos) {
		t.Fatalf("unexpected sphere circle %+v", c)
	}
}

func TestCapsuleCapsFollowRotation(t *testing.T) {
	pos := cp.Vector{X: 3, Y: 4}
	def := physics.Capsule(0.5, 1) // caps 0.5 from the centre

	upright := OutlineFor(def, pos, 0)
	if !near(upright.Circles[0].Center, cp.Vector{X: 3, Y: 4.5}) || !near(upright.Circles[1].Center, cp.Vector{X: 3, Y: 3.5}) {
		t.Fatalf("unexpected upright caps %v %v", upright.Circles[0].Center, upright.Circles[1].Center)
	}

	// a quarter turn counter-clockwise swings the top cap to the left
	turned := OutlineFor(def, pos, math.Pi/2)
	if !near(turned.Circles[0].Center, cp.Vector{X: 2.5, Y: 4}) || !near(turned.Circles[1].Center, cp.Vector{X: 3.5, Y: 4}) {
		t.Fatalf("unexpected turned caps %v %v", turned.Circles[0].Center, turned.Circles[1].Center)
	}
	if turned.Rects[0].Angle != math.Pi/2 {
		t.Fatalf("rect should carry the body angle")
	}
}

func TestRectCornersRotate(t *testing.T) {
	r := Rect{Center: cp.Vector{X: 0, Y: 0}, HalfWidth: 1, HalfHeight: 0.5, Angle: math.Pi / 2}
	c := r.Corners()
	// bottom-left (-1, -0.5) rotated a quarter turn lands on (0.5, -1)
	if !near(c[0], cp.Vector{X: 0.5, Y: -1}) {
		t.Fatalf("unexpected rotated corner %v", c[0])
	}
}

func TestCirclePoints(t *testing.T) {
	c := Circle{Center: cp.Vector{X: 1, Y: 1}, Radius: 2, Segments: 4}
	pts := c.Points()
	want := []cp.Vector{{X: 3, Y: 1}, {X: 1, Y: 3}, {X: -1, Y: 1}, {X: 1, Y: -1}}
	if len(pts) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(pts))
	}
	for i := range want {
		if !near(pts[i], want[i]) {
			t.Fatalf("point %d: expected %v, got %v", i, want[i], pts[i])
		}
	}
	if got := len((Circle{Radius: 1}).Points()); got != CircleSegments {
		t.Fatalf("default segments should be %d, got %d", CircleSegments, got)
	}
}

func TestOutlineBounds(t *testing.T) {
	o := OutlineFor(physics.Capsule(0.5, 1), cp.Vector{X: 0, Y: 0}, 0)
	bb := o.Bounds()
	if math.Abs(bb.L+0.5) > eps || math.Abs(bb.R-0.5) > eps || math.Abs(bb.B+1) > eps || math.Abs(bb.T-1) > eps {
		t.Fatalf("unexpected capsule bounds %+v", bb)
	}
}
