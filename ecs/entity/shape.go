package entity

import (
	"fmt"

	"github.com/milk9111/shapefall/physics"
	"github.com/milk9111/shapefall/prefabs"
)

type shapeBuildFn func(c prefabs.ConstructorSpec) physics.ShapeDef

var shapeRegistry = map[physics.ShapeKind]shapeBuildFn{
	physics.ShapeBox: func(c prefabs.ConstructorSpec) physics.ShapeDef {
		return physics.Box(c.HalfExtent(0), c.HalfExtent(1))
	},
	physics.ShapeSphere: func(c prefabs.ConstructorSpec) physics.ShapeDef {
		return physics.Sphere(c.Radius)
	},
	physics.ShapeCylinder: func(c prefabs.ConstructorSpec) physics.ShapeDef {
		// half_extents is (radius, half height); radius may be given on its own
		r := c.HalfExtent(0)
		if r == 0 {
			r = c.Radius
		}
		hh := c.HalfExtent(1)
		if hh == 0 {
			hh = c.Height / 2
		}
		return physics.Cylinder(r, hh)
	},
	physics.ShapeCapsule: func(c prefabs.ConstructorSpec) physics.ShapeDef {
		return physics.Capsule(c.Radius, c.Height)
	},
}

// ShapeFromSpec converts a constructor entry into a validated shape.
func ShapeFromSpec(c prefabs.ConstructorSpec) (physics.ShapeDef, error) {
	kind, err := physics.ParseShapeKind(c.Shape)
	if err != nil {
		return physics.ShapeDef{}, fmt.Errorf("constructor %s: %w", c.Name, err)
	}
	build, ok := shapeRegistry[kind]
	if !ok {
		return physics.ShapeDef{}, fmt.Errorf("constructor %s: no builder for %s", c.Name, kind)
	}
	def := build(c)
	if err := def.Validate(); err != nil {
		return physics.ShapeDef{}, fmt.Errorf("constructor %s: %w", c.Name, err)
	}
	return def, nil
}

// BuildRegistry registers every constructor of the scene in file order.
func BuildRegistry(spec *prefabs.SceneSpec) (*physics.Registry, error) {
	reg := physics.NewRegistry()
	for _, c := range spec.Constructors {
		def, err := ShapeFromSpec(c)
		if err != nil {
			return nil, err
		}
		ctor := physics.Constructor{
			Name:       c.Name,
			Def:        def,
			Mass:       c.Mass,
			Friction:   physics.DefaultFriction,
			Elasticity: physics.DefaultElasticity,
		}
		if c.Friction != nil {
			ctor.Friction = *c.Friction
		}
		if c.Elasticity != nil {
			ctor.Elasticity = *c.Elasticity
		}
		if _, err := reg.RegisterConstructor(ctor); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
