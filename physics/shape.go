package physics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

var ErrInvalidShape = errors.New("physics: invalid shape")

// ShapeKind names the collision shape a body was built with. Outlines are
// chosen from it, so it is kept alongside the chipmunk shape.
type ShapeKind int

const (
	ShapeUnknown ShapeKind = iota
	ShapeBox
	ShapeSphere
	ShapeCylinder
	ShapeCapsule
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeCylinder:
		return "cylinder"
	case ShapeCapsule:
		return "capsule"
	default:
		return "unknown"
	}
}

func ParseShapeKind(s string) (ShapeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "box":
		return ShapeBox, nil
	case "sphere", "circle":
		return ShapeSphere, nil
	case "cylinder":
		return ShapeCylinder, nil
	case "capsule":
		return ShapeCapsule, nil
	}
	return ShapeUnknown, fmt.Errorf("%w: unknown kind %q", ErrInvalidShape, s)
}

// ShapeDef describes a shape in the body's local frame.
//
// Box uses HalfWidth and HalfHeight. Sphere uses Radius. Cylinder and capsule
// use Radius and HalfHeight; for the capsule HalfHeight is the distance from
// the centre to each cap centre.
type ShapeDef struct {
	Kind       ShapeKind
	HalfWidth  float64
	HalfHeight float64
	Radius     float64
}

func Box(halfWidth, halfHeight float64) ShapeDef {
	return ShapeDef{Kind: ShapeBox, HalfWidth: halfWidth, HalfHeight: halfHeight}
}

func Sphere(radius float64) ShapeDef {
	return ShapeDef{Kind: ShapeSphere, Radius: radius}
}

func Cylinder(radius, halfHeight float64) ShapeDef {
	return ShapeDef{Kind: ShapeCylinder, Radius: radius, HalfHeight: halfHeight}
}

// Capsule takes the cylinder height between the cap centres.
func Capsule(radius, height float64) ShapeDef {
	return ShapeDef{Kind: ShapeCapsule, Radius: radius, HalfHeight: height / 2}
}

func (d ShapeDef) Validate() error {
	switch d.Kind {
	case ShapeBox:
		if d.HalfWidth <= 0 || d.HalfHeight <= 0 {
			return fmt.Errorf("%w: box half extents must be positive", ErrInvalidShape)
		}
	case ShapeSphere:
		if d.Radius <= 0 {
			return fmt.Errorf("%w: sphere radius must be positive", ErrInvalidShape)
		}
	case ShapeCylinder:
		if d.Radius <= 0 || d.HalfHeight <= 0 {
			return fmt.Errorf("%w: cylinder radius and half height must be positive", ErrInvalidShape)
		}
	case ShapeCapsule:
		if d.Radius <= 0 || d.HalfHeight < 0 {
			return fmt.Errorf("%w: capsule radius must be positive", ErrInvalidShape)
		}
	default:
		return fmt.Errorf("%w: kind %s", ErrInvalidShape, d.Kind)
	}
	return nil
}

// moment returns the moment of inertia about the body's centre for mass.
func (d ShapeDef) moment(mass float64) float64 {
	switch d.Kind {
	case ShapeBox:
		return cp.MomentForBox(mass, d.HalfWidth*2, d.HalfHeight*2)
	case ShapeSphere:
		return cp.MomentForCircle(mass, 0, d.Radius, cp.Vector{})
	case ShapeCylinder:
		// seen edge-on a cylinder is a box
		return cp.MomentForBox(mass, d.Radius*2, d.HalfHeight*2)
	case ShapeCapsule:
		return cp.MomentForSegment(mass, cp.Vector{X: 0, Y: -d.HalfHeight}, cp.Vector{X: 0, Y: d.HalfHeight}, d.Radius)
	}
	return 0
}

func (d ShapeDef) newShape(body *cp.Body) *cp.Shape {
	switch d.Kind {
	case ShapeBox:
		return cp.NewBox(body, d.HalfWidth*2, d.HalfHeight*2, 0)
	case ShapeSphere:
		return cp.NewCircle(body, d.Radius, cp.Vector{})
	case ShapeCylinder:
		return cp.NewBox(body, d.Radius*2, d.HalfHeight*2, 0)
	case ShapeCapsule:
		return cp.NewSegment(body, cp.Vector{X: 0, Y: -d.HalfHeight}, cp.Vector{X: 0, Y: d.HalfHeight}, d.Radius)
	}
	return nil
}
