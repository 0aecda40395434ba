package physics

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var (
	ErrUnknownConstructor   = errors.New("physics: unknown constructor")
	ErrDuplicateConstructor = errors.New("physics: duplicate constructor")
)

const (
	DefaultFriction   = 0.5
	DefaultElasticity = 0.0
)

// Constructor is a reusable template pairing a shape with a mass. A mass of
// zero builds kinematic bodies.
type Constructor struct {
	Name       string
	Def        ShapeDef
	Mass       float64
	Friction   float64
	Elasticity float64

	moment float64
}

// Construct builds a new body from the template. The body is not yet in any world.
func (c *Constructor) Construct() *Body {
	if c == nil {
		return nil
	}
	var body *cp.Body
	if c.Mass > 0 {
		body = cp.NewBody(c.Mass, c.moment)
	} else {
		body = cp.NewKinematicBody()
		body.SetPositionUpdateFunc(holdPosition)
	}
	shape := c.Def.newShape(body)
	shape.SetFriction(c.Friction)
	shape.SetElasticity(c.Elasticity)
	return &Body{Name: c.Name, Def: c.Def, Mass: c.Mass, body: body, shape: shape}
}

// Registry holds constructors in registration order.
type Registry struct {
	ctors  []*Constructor
	byName map[string]int
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds a constructor with default surface properties.
func (r *Registry) Register(name string, def ShapeDef, mass float64) (*Constructor, error) {
	return r.RegisterConstructor(Constructor{
		Name:       name,
		Def:        def,
		Mass:       mass,
		Friction:   DefaultFriction,
		Elasticity: DefaultElasticity,
	})
}

func (r *Registry) RegisterConstructor(c Constructor) (*Constructor, error) {
	if r == nil {
		return nil, fmt.Errorf("physics: register %s: nil registry", c.Name)
	}
	if c.Name == "" {
		return nil, fmt.Errorf("physics: register: empty name")
	}
	if _, ok := r.byName[c.Name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateConstructor, c.Name)
	}
	if err := c.Def.Validate(); err != nil {
		return nil, fmt.Errorf("physics: register %s: %w", c.Name, err)
	}
	if c.Mass < 0 {
		return nil, fmt.Errorf("physics: register %s: negative mass %v", c.Name, c.Mass)
	}
	if c.Mass > 0 {
		c.moment = c.Def.moment(c.Mass)
	}
	ctor := &c
	r.byName[c.Name] = len(r.ctors)
	r.ctors = append(r.ctors, ctor)
	return ctor, nil
}

func (r *Registry) Get(name string) (*Constructor, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownConstructor, name)
	}
	i, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownConstructor, name)
	}
	return r.ctors[i], nil
}

// At returns the constructor registered i-th.
func (r *Registry) At(i int) (*Constructor, error) {
	if r == nil || i < 0 || i >= len(r.ctors) {
		return nil, fmt.Errorf("%w: index %d", ErrUnknownConstructor, i)
	}
	return r.ctors[i], nil
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ctors)
}

func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.ctors))
	for _, c := range r.ctors {
		names = append(names, c.Name)
	}
	return names
}

func (r *Registry) Construct(name string) (*Body, error) {
	c, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return c.Construct(), nil
}
