package system

import (
	"github.com/milk9111/shapefall/ecs"
	"github.com/milk9111/shapefall/physics"
)

// PhysicsSystem steps the chipmunk world once per frame.
type PhysicsSystem struct {
	world *physics.World

	// SubSteps is the number of fixed steps taken on the last update.
	SubSteps int
}

func NewPhysicsSystem(world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{world: world}
}

func (ps *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if ps == nil || ps.world == nil {
		return
	}
	ps.SubSteps = ps.world.Step(dt)
}
