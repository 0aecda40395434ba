package physics

import (
	"github.com/jakecoffman/cp"
)

// Body is a live rigid body: a chipmunk body, its single shape, and the
// description it was built from.
type Body struct {
	Name string
	Def  ShapeDef
	Mass float64

	body  *cp.Body
	shape *cp.Shape
	world *World
}

// Kinematic reports whether the body is driven from outside the solver.
func (b *Body) Kinematic() bool {
	return b != nil && b.body != nil && b.body.GetType() == cp.BODY_KINEMATIC
}

func (b *Body) Position() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Position()
}

// Angle returns the planar rotation in radians.
func (b *Body) Angle() float64 {
	if b == nil || b.body == nil {
		return 0
	}
	return b.body.Angle()
}

func (b *Body) Velocity() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Velocity()
}

// SetPosition teleports the body.
func (b *Body) SetPosition(pos cp.Vector) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetPosition(pos)
}

// DriveTo moves a kinematic body to pos and records the velocity implied by
// the move over dt so contacts see a moving surface.
func (b *Body) DriveTo(pos cp.Vector, dt float64) {
	if b == nil || b.body == nil {
		return
	}
	prev := b.body.Position()
	b.body.SetPosition(pos)
	if dt > 0 {
		b.body.SetVelocity((pos.X-prev.X)/dt, (pos.Y-prev.Y)/dt)
	} else {
		b.body.SetVelocity(0, 0)
	}
}

// CP exposes the chipmunk handles.
func (b *Body) CP() (*cp.Body, *cp.Shape) {
	if b == nil {
		return nil, nil
	}
	return b.body, b.shape
}

// holdPosition replaces position integration for kinematic bodies: their
// position is written by DriveTo only.
func holdPosition(body *cp.Body, dt float64) {}
