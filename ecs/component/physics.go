package component

import "github.com/milk9111/shapefall/physics"

// PhysicsBody links an entity to its live chipmunk body.
type PhysicsBody struct {
	Body *physics.Body
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
