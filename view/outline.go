package view

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shapefall/physics"
)

// CircleSegments is the number of chords used to draw a circle.
const CircleSegments = 16

// Rect is a rotated rectangle in world space.
type Rect struct {
	Center     cp.Vector
	HalfWidth  float64
	HalfHeight float64
	Angle      float64
}

// Corners returns the corners counter-clockwise from bottom-left.
func (r Rect) Corners() [4]cp.Vector {
	local := [4]cp.Vector{
		{X: -r.HalfWidth, Y: -r.HalfHeight},
		{X: r.HalfWidth, Y: -r.HalfHeight},
		{X: r.HalfWidth, Y: r.HalfHeight},
		{X: -r.HalfWidth, Y: r.HalfHeight},
	}
	var out [4]cp.Vector
	for i, p := range local {
		out[i] = toWorld(p, r.Center, r.Angle)
	}
	return out
}

// Circle is a circle in world space drawn as a closed polyline.
type Circle struct {
	Center   cp.Vector
	Radius   float64
	Segments int
}

// Points returns Segments points on the circle starting at angle 0.
func (c Circle) Points() []cp.Vector {
	n := c.Segments
	if n < 3 {
		n = CircleSegments
	}
	out := make([]cp.Vector, n)
	for i := range out {
		th := float64(i) * 2 * math.Pi / float64(n)
		out[i] = cp.Vector{X: c.Center.X + math.Cos(th)*c.Radius, Y: c.Center.Y + math.Sin(th)*c.Radius}
	}
	return out
}

// Outline is the wireframe of one body.
type Outline struct {
	Kind    physics.ShapeKind
	Rects   []Rect
	Circles []Circle
}

func (o Outline) Empty() bool {
	return len(o.Rects) == 0 && len(o.Circles) == 0
}

// Bounds returns the world-space box enclosing the outline.
func (o Outline) Bounds() cp.BB {
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	grow := func(x, y float64) {
		bb.L = math.Min(bb.L, x)
		bb.R = math.Max(bb.R, x)
		bb.B = math.Min(bb.B, y)
		bb.T = math.Max(bb.T, y)
	}
	for _, r := range o.Rects {
		for _, p := range r.Corners() {
			grow(p.X, p.Y)
		}
	}
	for _, c := range o.Circles {
		grow(c.Center.X-c.Radius, c.Center.Y-c.Radius)
		grow(c.Center.X+c.Radius, c.Center.Y+c.Radius)
	}
	return bb
}

type recipe func(def physics.ShapeDef, pos cp.Vector, angle float64) Outline

var recipes = map[physics.ShapeKind]recipe{
	physics.ShapeBox: func(def physics.ShapeDef, pos cp.Vector, angle float64) Outline {
		return Outline{Rects: []Rect{{Center: pos, HalfWidth: def.HalfWidth, HalfHeight: def.HalfHeight, Angle: angle}}}
	},
	physics.ShapeSphere: func(def physics.ShapeDef, pos cp.Vector, angle float64) Outline {
		return Outline{Circles: []Circle{{Center: pos, Radius: def.Radius, Segments: CircleSegments}}}
	},
	physics.ShapeCylinder: func(def physics.ShapeDef, pos cp.Vector, angle float64) Outline {
		return Outline{Rects: []Rect{{Center: pos, HalfWidth: def.Radius, HalfHeight: def.HalfHeight, Angle: angle}}}
	},
	physics.ShapeCapsule: func(def physics.ShapeDef, pos cp.Vector, angle float64) Outline {
		top := toWorld(cp.Vector{X: 0, Y: def.HalfHeight}, pos, angle)
		bottom := toWorld(cp.Vector{X: 0, Y: -def.HalfHeight}, pos, angle)
		return Outline{
			Rects: []Rect{{Center: pos, HalfWidth: def.Radius, HalfHeight: def.HalfHeight, Angle: angle}},
			Circles: []Circle{
				{Center: top, Radius: def.Radius, Segments: CircleSegments},
				{Center: bottom, Radius: def.Radius, Segments: CircleSegments},
			},
		}
	},
}

// OutlineFor maps a shape at a pose to its wireframe. Unknown kinds yield an
// empty outline.
func OutlineFor(def physics.ShapeDef, pos cp.Vector, angle float64) Outline {
	r, ok := recipes[def.Kind]
	if !ok {
		return Outline{Kind: physics.ShapeUnknown}
	}
	o := r(def, pos, angle)
	o.Kind = def.Kind
	return o
}

// BodyOutline is OutlineFor at the body's current pose.
func BodyOutline(b *physics.Body) Outline {
	if b == nil {
		return Outline{}
	}
	return OutlineFor(b.Def, b.Position(), b.Angle())
}

func toWorld(local, origin cp.Vector, angle float64) cp.Vector {
	s, c := math.Sincos(angle)
	return cp.Vector{
		X: origin.X + local.X*c - local.Y*s,
		Y: origin.Y + local.X*s + local.Y*c,
	}
}
