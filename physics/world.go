package physics

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var ErrBodyInWorld = errors.New("physics: body already in a world")

const (
	collisionTypeGround cp.CollisionType = iota + 1
	collisionTypeObject
)

// Options configures a World. Zero fields take the defaults of the demo scene.
type Options struct {
	Gravity     float64
	FixedStep   float64
	MaxSubSteps int
	Iterations  int
}

func (o Options) withDefaults() Options {
	if o.FixedStep <= 0 {
		o.FixedStep = 1.0 / 60.0
	}
	if o.MaxSubSteps <= 0 {
		o.MaxSubSteps = 5
	}
	if o.Iterations <= 0 {
		o.Iterations = 10
	}
	return o
}

// ContactStats counts contacts between the ground and other bodies.
type ContactStats struct {
	Active int
	Total  int
}

// World owns the Chipmunk space and every body added to it.
type World struct {
	space         *cp.Space
	handlersReady bool

	fixedStep   float64
	maxSubSteps int
	accumulator float64

	bodies      []*Body
	shapeToBody map[*cp.Shape]*Body
	contacts    ContactStats
}

func NewWorld(opts Options) *World {
	opts = opts.withDefaults()
	space := cp.NewSpace()
	space.Iterations = uint(opts.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: opts.Gravity})

	w := &World{
		space:       space,
		fixedStep:   opts.FixedStep,
		maxSubSteps: opts.MaxSubSteps,
		shapeToBody: make(map[*cp.Shape]*Body),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) SetGravity(g float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.SetGravity(cp.Vector{X: 0, Y: g})
}

// Add inserts the body and its shape into the space. Kinematic bodies are
// tagged as ground for contact accounting.
func (w *World) Add(b *Body) error {
	if w == nil || w.space == nil {
		return fmt.Errorf("physics: add: nil world")
	}
	if b == nil || b.body == nil || b.shape == nil {
		return fmt.Errorf("physics: add: nil body")
	}
	if b.world != nil {
		return fmt.Errorf("%w: %s", ErrBodyInWorld, b.Name)
	}
	if b.Kinematic() {
		b.shape.SetCollisionType(collisionTypeGround)
	} else {
		b.shape.SetCollisionType(collisionTypeObject)
	}
	w.space.AddBody(b.body)
	w.space.AddShape(b.shape)
	w.shapeToBody[b.shape] = b
	w.bodies = append(w.bodies, b)
	b.world = w
	return nil
}

// Bodies returns the live bodies in insertion order.
func (w *World) Bodies() []*Body {
	if w == nil {
		return nil
	}
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return len(w.bodies)
}

// BodyForShape maps a chipmunk shape back to its body.
func (w *World) BodyForShape(s *cp.Shape) (*Body, bool) {
	if w == nil {
		return nil, false
	}
	b, ok := w.shapeToBody[s]
	return b, ok
}

func (w *World) Contacts() ContactStats {
	if w == nil {
		return ContactStats{}
	}
	return w.contacts
}

// Step advances the simulation by dt using fixed sub-steps. Leftover time is
// carried to the next call; time beyond the sub-step cap is dropped. It
// returns the number of sub-steps taken.
func (w *World) Step(dt float64) int {
	if w == nil || w.space == nil || dt <= 0 {
		return 0
	}
	w.accumulator += dt
	steps := int((w.accumulator + 1e-9) / w.fixedStep)
	w.accumulator -= float64(steps) * w.fixedStep
	if w.accumulator < 0 {
		w.accumulator = 0
	}
	if steps > w.maxSubSteps {
		steps = w.maxSubSteps
	}
	for i := 0; i < steps; i++ {
		w.space.Step(w.fixedStep)
	}
	return steps
}

// Close removes every body from the space, newest first.
func (w *World) Close() {
	if w == nil || w.space == nil {
		return
	}
	for i := len(w.bodies) - 1; i >= 0; i-- {
		b := w.bodies[i]
		w.space.RemoveShape(b.shape)
		w.space.RemoveBody(b.body)
		delete(w.shapeToBody, b.shape)
		b.world = nil
	}
	w.bodies = nil
	w.contacts = ContactStats{}
}
