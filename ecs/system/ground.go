package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shapefall/ecs"
	"github.com/milk9111/shapefall/ecs/component"
)

// GroundSystem moves oscillating kinematic bodies. It runs before the
// physics step so the solver sees the new position.
type GroundSystem struct{}

func NewGroundSystem() *GroundSystem {
	return &GroundSystem{}
}

func (s *GroundSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.GroundOscillatorComponent.Kind(), func(e ecs.Entity, osc *component.GroundOscillator) {
		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || pb.Body == nil {
			return
		}
		y := osc.Advance(dt)
		pb.Body.DriveTo(cp.Vector{X: osc.BaseX, Y: osc.BaseY + y}, dt)
	})
}
