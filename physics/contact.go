package physics

import "github.com/jakecoffman/cp"

func (w *World) setupHandlers() {
	if w == nil || w.handlersReady || w.space == nil {
		return
	}

	groundHandler := w.space.NewCollisionHandler(collisionTypeGround, collisionTypeObject)
	groundHandler.UserData = w
	groundHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		world.contacts.Active++
		world.contacts.Total++
		return true
	}
	groundHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return
		}
		if world.contacts.Active > 0 {
			world.contacts.Active--
		}
	}

	w.handlersReady = true
}
