package entity

import (
	"github.com/milk9111/shapefall/ecs"
	"github.com/milk9111/shapefall/ecs/component"
	"github.com/milk9111/shapefall/physics"
)

// AddBody creates an entity for a body that is already in the physics world.
func AddBody(w *ecs.World, body *physics.Body, style component.OutlineStyle) (ecs.Entity, error) {
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), component.PhysicsBody{Body: body}); err != nil {
		w.DestroyEntity(e)
		return 0, err
	}
	if err := ecs.Add(w, e, component.OutlineStyleComponent.Kind(), style); err != nil {
		w.DestroyEntity(e)
		return 0, err
	}
	return e, nil
}
