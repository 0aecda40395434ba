package system

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shapefall/ecs"
	"github.com/milk9111/shapefall/ecs/component"
	"github.com/milk9111/shapefall/ecs/entity"
	"github.com/milk9111/shapefall/physics"
)

// SpawnSystem drops a new body from above the scene each time the spawner
// timer fires.
type SpawnSystem struct {
	registry *physics.Registry
	world    *physics.World
	picker   Picker
	fallback Picker
	style    component.OutlineStyle
}

// NewSpawnSystem uses picker, or uniform picking when it is nil. seed feeds
// the uniform fallback; 0 seeds from the clock.
func NewSpawnSystem(registry *physics.Registry, world *physics.World, picker Picker, style component.OutlineStyle, seed int64) *SpawnSystem {
	fallback := NewUniformPicker(seed)
	if picker == nil {
		picker = fallback
	}
	return &SpawnSystem{
		registry: registry,
		world:    world,
		picker:   picker,
		fallback: fallback,
		style:    style,
	}
}

// SetPicker swaps the picker; nil restores uniform picking.
func (s *SpawnSystem) SetPicker(p Picker) {
	if p == nil {
		p = s.fallback
	}
	s.picker = p
}

func (s *SpawnSystem) SetStyle(style component.OutlineStyle) {
	s.style = style
}

func (s *SpawnSystem) Update(w *ecs.World, dt float64) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.SpawnerComponent.Kind(), func(e ecs.Entity, sp *component.Spawner) {
		due := sp.Advance(dt)
		for i := 0; i < due; i++ {
			if _, err := s.Spawn(w, sp); err != nil {
				log.Printf("spawn: %v", err)
				return
			}
		}
	})
}

// Spawn builds one body from a picked constructor and adds it to both worlds.
func (s *SpawnSystem) Spawn(w *ecs.World, sp *component.Spawner) (ecs.Entity, error) {
	idx, err := s.pick(sp.Spawned)
	if err != nil {
		return 0, err
	}
	ctor, err := s.registry.At(idx)
	if err != nil {
		return 0, err
	}

	body := ctor.Construct()
	body.SetPosition(cp.Vector{X: 0, Y: sp.Height})
	if err := s.world.Add(body); err != nil {
		return 0, fmt.Errorf("add %s: %w", ctor.Name, err)
	}

	e, err := entity.AddBody(w, body, s.style)
	if err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.SpawnedTagComponent.Kind(), component.SpawnedTag{
		Constructor: ctor.Name,
		Index:       idx,
		Serial:      sp.Spawned,
	}); err != nil {
		return 0, err
	}
	sp.Spawned++

	w.Events().Push(ecs.Event{Type: ecs.EventSpawned, Data: ecs.SpawnEvent{
		Entity:      e,
		Constructor: ctor.Name,
		Serial:      sp.Spawned,
	}})
	return e, nil
}

// SpawnEvents drains the spawn events queued since the frame started.
func SpawnEvents(w *ecs.World) []ecs.SpawnEvent {
	var out []ecs.SpawnEvent
	for _, evt := range w.Events().Take(ecs.EventSpawned) {
		if se, ok := evt.Data.(ecs.SpawnEvent); ok {
			out = append(out, se)
		}
	}
	return out
}

// pick asks the configured picker and falls back to a uniform pick when it
// fails or names the ground.
func (s *SpawnSystem) pick(spawned int) (int, error) {
	req := PickRequest{Count: s.registry.Len(), Spawned: spawned, Names: s.registry.Names()}
	if req.Count < 2 {
		return 0, ErrNothingToSpawn
	}
	idx, err := s.picker.Pick(req)
	if err == nil && idx >= 1 && idx < req.Count {
		return idx, nil
	}
	if err != nil {
		log.Printf("spawn: picker failed, picking uniformly: %v", err)
	} else {
		log.Printf("spawn: picker chose %d outside [1, %d), picking uniformly", idx, req.Count)
	}
	return s.fallback.Pick(req)
}
