package entity

import (
	"fmt"
	"image/color"
	"reflect"

	"github.com/milk9111/shapefall/ecs"
	"github.com/milk9111/shapefall/ecs/component"
	"github.com/milk9111/shapefall/physics"
	"github.com/milk9111/shapefall/prefabs"
)

// Scene is everything BuildScene acquired, in acquisition order.
type Scene struct {
	Spec     *prefabs.SceneSpec
	Registry *physics.Registry
	Physics  *physics.World
	Ground   ecs.Entity
	Spawner  ecs.Entity
}

// BuildScene creates the registry, the physics world, the kinematic ground
// and the spawner entity. On failure everything acquired so far is released.
func BuildScene(w *ecs.World, spec *prefabs.SceneSpec) (_ *Scene, err error) {
	if w == nil || spec == nil {
		return nil, fmt.Errorf("entity: build scene: nil world or spec")
	}
	reg, err := BuildRegistry(spec)
	if err != nil {
		return nil, fmt.Errorf("entity: build scene: %w", err)
	}
	groundCtor, err := reg.Get(spec.Ground.Constructor)
	if err != nil {
		return nil, fmt.Errorf("entity: build scene: %w", err)
	}
	if groundCtor.Mass > 0 {
		return nil, fmt.Errorf("entity: build scene: ground %s is not kinematic", groundCtor.Name)
	}

	pw := physics.NewWorld(physics.Options{
		Gravity:     spec.Gravity,
		FixedStep:   spec.Frame.FixedStep,
		MaxSubSteps: spec.Frame.MaxSubSteps,
		Iterations:  spec.Frame.Iterations,
	})
	scene := &Scene{Spec: spec, Registry: reg, Physics: pw}
	defer func() {
		if err == nil {
			return
		}
		for _, e := range []ecs.Entity{scene.Spawner, scene.Ground} {
			if e != 0 {
				w.DestroyEntity(e)
			}
		}
		pw.Close()
	}()

	ground := groundCtor.Construct()
	if err := pw.Add(ground); err != nil {
		return nil, fmt.Errorf("entity: build scene: %w", err)
	}
	scene.Ground, err = AddBody(w, ground, GroundStyle(spec))
	if err != nil {
		return nil, err
	}
	if err := ecs.Add(w, scene.Ground, component.GroundTagComponent.Kind(), component.GroundTag{}); err != nil {
		return nil, err
	}
	if err := ecs.Add(w, scene.Ground, component.GroundOscillatorComponent.Kind(), component.GroundOscillator{
		Amplitude: spec.Ground.Amplitude,
		Speed:     spec.Ground.Speed,
	}); err != nil {
		return nil, err
	}

	scene.Spawner = w.CreateEntity()
	if err := ecs.Add(w, scene.Spawner, component.SpawnerComponent.Kind(), component.Spawner{
		Interval: spec.Spawn.Interval,
		Height:   spec.Spawn.Height,
	}); err != nil {
		return nil, err
	}

	return scene, nil
}

// Apply copies the tunables of a reloaded spec onto a running scene. Bodies
// and constructors are left alone. It returns the changed fields that only
// take effect on a restart.
func (s *Scene) Apply(w *ecs.World, spec *prefabs.SceneSpec) []string {
	if s == nil || spec == nil {
		return nil
	}
	restart := RestartFields(s.Spec, spec)
	s.Spec = spec
	s.Physics.SetGravity(spec.Gravity)
	if osc, ok := ecs.Get(w, s.Ground, component.GroundOscillatorComponent.Kind()); ok {
		osc.Amplitude = spec.Ground.Amplitude
		osc.Speed = spec.Ground.Speed
	}
	if st, ok := ecs.Get(w, s.Ground, component.OutlineStyleComponent.Kind()); ok {
		*st = GroundStyle(spec)
	}
	if sp, ok := ecs.Get(w, s.Spawner, component.SpawnerComponent.Kind()); ok {
		sp.Interval = spec.Spawn.Interval
		sp.Height = spec.Spawn.Height
		if sp.Remaining > sp.Interval {
			sp.Remaining = sp.Interval
		}
	}
	style := BodyStyle(spec)
	ecs.ForEach(w, component.SpawnedTagComponent.Kind(), func(e ecs.Entity, _ *component.SpawnedTag) {
		if st, ok := ecs.Get(w, e, component.OutlineStyleComponent.Kind()); ok {
			*st = style
		}
	})
	return restart
}

// RestartFields lists the yaml fields that differ between old and next and
// are fixed once the scene is built.
func RestartFields(old, next *prefabs.SceneSpec) []string {
	if old == nil || next == nil {
		return nil
	}
	var fields []string
	if old.Frame.FixedStep != next.Frame.FixedStep {
		fields = append(fields, "frame.fixed_step")
	}
	if old.Frame.MaxSubSteps != next.Frame.MaxSubSteps {
		fields = append(fields, "frame.max_sub_steps")
	}
	if old.Frame.Iterations != next.Frame.Iterations {
		fields = append(fields, "frame.iterations")
	}
	if old.Ground.Constructor != next.Ground.Constructor {
		fields = append(fields, "ground.constructor")
	}
	if !reflect.DeepEqual(old.Constructors, next.Constructors) {
		fields = append(fields, "constructors")
	}
	return fields
}

// Close releases the physics world. The ECS world is left to the caller.
func (s *Scene) Close() {
	if s == nil {
		return
	}
	s.Physics.Close()
}

var defaultOutline = color.NRGBA{G: 0xff, A: 0xff}

func GroundStyle(spec *prefabs.SceneSpec) component.OutlineStyle {
	return component.OutlineStyle{
		Color: spec.Colors.Ground.Or(spec.Colors.Outline.Or(defaultOutline)),
		Width: spec.Colors.OutlineWidth,
	}
}

func BodyStyle(spec *prefabs.SceneSpec) component.OutlineStyle {
	return component.OutlineStyle{Color: spec.Colors.Outline.Or(defaultOutline), Width: spec.Colors.OutlineWidth}
}
