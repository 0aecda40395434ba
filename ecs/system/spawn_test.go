package system

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/shapefall/ecs"
	"github.com/milk9111/shapefall/ecs/component"
	"github.com/milk9111/shapefall/ecs/entity"
	"github.com/milk9111/shapefall/prefabs"
)

type fixedPicker struct {
	idx int
	err error
}

func (p fixedPicker) Pick(req PickRequest) (int, error) {
	return p.idx, p.err
}

func newTestScene(t *testing.T) (*ecs.World, *entity.Scene) {
	t.Helper()
	spec, err := prefabs.LoadSceneSpec("")
	if err != nil {
		t.Fatalf("load spec: %v", err)
	}
	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, spec)
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}
	t.Cleanup(scene.Close)
	return w, scene
}

func TestUniformPickerNeverPicksGround(t *testing.T) {
	p := NewUniformPicker(7)
	seen := map[int]int{}
	for i := 0; i < 2000; i++ {
		idx, err := p.Pick(PickRequest{Count: 5})
		if err != nil {
			t.Fatalf("pick: %v", err)
		}
		if idx < 1 || idx >= 5 {
			t.Fatalf("picked %d, outside [1, 5)", idx)
		}
		seen[idx]++
	}
	for idx := 1; idx < 5; idx++ {
		if seen[idx] == 0 {
			t.Fatalf("constructor %d never picked", idx)
		}
	}
	if _, err := p.Pick(PickRequest{Count: 1}); !errors.Is(err, ErrNothingToSpawn) {
		t.Fatalf("expected ErrNothingToSpawn, got %v", err)
	}
}

func TestSpawnSystemRejectsGroundPicks(t *testing.T) {
	cases := []struct {
		name   string
		picker Picker
	}{
		{"ground_index", fixedPicker{idx: 0}},
		{"out_of_range", fixedPicker{idx: 99}},
		{"negative", fixedPicker{idx: -1}},
		{"error", fixedPicker{err: errors.New("boom")}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, scene := newTestScene(t)
			s := NewSpawnSystem(scene.Registry, scene.Physics, c.picker, entity.BodyStyle(scene.Spec), 3)
			sp, _ := ecs.Get(w, scene.Spawner, component.SpawnerComponent.Kind())
			for i := 0; i < 50; i++ {
				e, err := s.Spawn(w, sp)
				if err != nil {
					t.Fatalf("spawn: %v", err)
				}
				tag, ok := ecs.Get(w, e, component.SpawnedTagComponent.Kind())
				if !ok {
					t.Fatalf("spawned entity has no tag")
				}
				if tag.Index == 0 || tag.Constructor == "ground" {
					t.Fatalf("spawner selected the ground")
				}
			}
			if got := len(w.Query(component.GroundTagComponent.Kind())); got != 1 {
				t.Fatalf("expected one ground, got %d", got)
			}
		})
	}
}

func TestScriptPickers(t *testing.T) {
	t.Run("round_robin", func(t *testing.T) {
		src, err := prefabs.LoadScript("round_robin")
		if err != nil {
			t.Fatalf("load script: %v", err)
		}
		p, err := NewScriptPicker("round_robin", src, 1)
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		for spawned := 0; spawned < 8; spawned++ {
			idx, err := p.Pick(PickRequest{Count: 5, Spawned: spawned})
			if err != nil {
				t.Fatalf("pick: %v", err)
			}
			if want := 1 + spawned%4; idx != want {
				t.Fatalf("spawned=%d: expected %d, got %d", spawned, want, idx)
			}
		}
	})

	t.Run("uniform", func(t *testing.T) {
		src, err := prefabs.LoadScript("uniform")
		if err != nil {
			t.Fatalf("load script: %v", err)
		}
		p, err := NewScriptPicker("uniform", src, 1)
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		for i := 0; i < 200; i++ {
			idx, err := p.Pick(PickRequest{Count: 5, Names: []string{"ground", "a", "b", "c", "d"}})
			if err != nil {
				t.Fatalf("pick: %v", err)
			}
			if idx < 1 || idx >= 5 {
				t.Fatalf("picked %d, outside [1, 5)", idx)
			}
		}
	})

	t.Run("by_name", func(t *testing.T) {
		src := []byte(`
pick := 1
for i := 1; i < count; i++ {
	if names[i] == "capsule" { pick = i }
}
`)
		p, err := NewScriptPicker("by_name", src, 1)
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		idx, err := p.Pick(PickRequest{Count: 3, Names: []string{"ground", "box", "capsule"}})
		if err != nil || idx != 2 {
			t.Fatalf("expected 2, got %d (%v)", idx, err)
		}
	})

	t.Run("errors", func(t *testing.T) {
		if _, err := NewScriptPicker("broken", []byte(`pick := (`), 1); err == nil {
			t.Fatalf("expected a compile error")
		}
		p, err := NewScriptPicker("no_pick", []byte(`x := count`), 1)
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		if _, err := p.Pick(PickRequest{Count: 3}); err == nil {
			t.Fatalf("expected an error when pick is undefined")
		}
		p, err = NewScriptPicker("string_pick", []byte(`pick := "box"`), 1)
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		if _, err := p.Pick(PickRequest{Count: 3}); err == nil {
			t.Fatalf("expected an error for a non-int pick")
		}
	})
}

// TestFrameLoop runs the per-frame order (ground, physics, spawn) for ten
// simulated seconds at several frame rates.
func TestFrameLoop(t *testing.T) {
	cases := []struct {
		name string
		dt   func(i int) float64
	}{
		{"60fps", func(int) float64 { return 1.0 / 60.0 }},
		{"30fps", func(int) float64 { return 1.0 / 30.0 }},
		{"uneven", func(i int) float64 { return []float64{0.004, 0.02, 1.0 / 30.0, 0.011}[i%4] }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, scene := newTestScene(t)
			ground := NewGroundSystem()
			phys := NewPhysicsSystem(scene.Physics)
			spawn := NewSpawnSystem(scene.Registry, scene.Physics, NewUniformPicker(1), entity.BodyStyle(scene.Spec), 1)
			sched := ecs.NewScheduler(ground, phys, spawn)

			elapsed := 0.0
			for i := 0; elapsed+c.dt(i) <= 10; i++ {
				dt := c.dt(i)
				sched.Update(w, dt)
				elapsed += dt

				osc, _ := ecs.Get(w, scene.Ground, component.GroundOscillatorComponent.Kind())
				gy := scene.Physics.Bodies()[0].Position().Y
				if want := osc.Amplitude * math.Sin(osc.Angle*math.Pi/180); math.Abs(gy-want) > 1e-9 {
					t.Fatalf("ground at %v, expected %v", gy, want)
				}
			}

			sp, _ := ecs.Get(w, scene.Spawner, component.SpawnerComponent.Kind())
			if sp.Spawned != 7 {
				t.Fatalf("expected 7 spawns in %.3fs, got %d", elapsed, sp.Spawned)
			}
			if got := len(w.Query(component.SpawnedTagComponent.Kind())); got != 7 {
				t.Fatalf("expected 7 spawned entities, got %d", got)
			}
			kinematic := 0
			for _, b := range scene.Physics.Bodies() {
				if b.Kinematic() {
					kinematic++
				}
			}
			if kinematic != 1 {
				t.Fatalf("expected exactly one kinematic body, got %d", kinematic)
			}
		})
	}
}

func TestSpawnEmitsOneEventPerFire(t *testing.T) {
	w, scene := newTestScene(t)
	spawn := NewSpawnSystem(scene.Registry, scene.Physics, NewUniformPicker(5), entity.BodyStyle(scene.Spec), 5)
	sched := ecs.NewScheduler(spawn)

	// the timer starts at zero, so the first non-zero frame fires once
	sched.Update(w, 0.1)
	events := SpawnEvents(w)
	if len(events) != 1 {
		t.Fatalf("expected one spawn event, got %d", len(events))
	}
	ev := events[0]
	tag, ok := ecs.Get(w, ev.Entity, component.SpawnedTagComponent.Kind())
	if !ok {
		t.Fatalf("event entity %s carries no spawned tag", ev.Entity)
	}
	if ev.Constructor != tag.Constructor || ev.Constructor == "ground" || ev.Serial != 1 {
		t.Fatalf("unexpected event %+v for tag %+v", ev, tag)
	}
	if again := SpawnEvents(w); len(again) != 0 {
		t.Fatalf("events must be drained once, got %d more", len(again))
	}

	// 3.2s at once is two more fires in one frame
	sched.Update(w, 3.2)
	events = SpawnEvents(w)
	if len(events) != 2 || events[0].Serial != 2 || events[1].Serial != 3 {
		t.Fatalf("expected serials 2 and 3, got %+v", events)
	}
	if events[0].Entity == events[1].Entity {
		t.Fatalf("each fire must create its own entity")
	}
}

func TestSeededFallbackIsDeterministic(t *testing.T) {
	run := func(seed int64) []int {
		w, scene := newTestScene(t)
		s := NewSpawnSystem(scene.Registry, scene.Physics, fixedPicker{err: errors.New("boom")}, entity.BodyStyle(scene.Spec), seed)
		sp, _ := ecs.Get(w, scene.Spawner, component.SpawnerComponent.Kind())
		var got []int
		for i := 0; i < 20; i++ {
			e, err := s.Spawn(w, sp)
			if err != nil {
				t.Fatalf("spawn: %v", err)
			}
			tag, _ := ecs.Get(w, e, component.SpawnedTagComponent.Kind())
			got = append(got, tag.Index)
		}
		return got
	}

	a, b := run(42), run(42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at spawn %d: %v vs %v", i, a, b)
		}
	}
}

func TestSeededUniformScriptIsDeterministic(t *testing.T) {
	src, err := prefabs.LoadScript("uniform")
	if err != nil {
		t.Fatalf("load script: %v", err)
	}
	picks := func(seed int64) []int {
		p, err := NewScriptPicker("uniform", src, seed)
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		var out []int
		for i := 0; i < 30; i++ {
			idx, err := p.Pick(PickRequest{Count: 5, Spawned: i})
			if err != nil {
				t.Fatalf("pick: %v", err)
			}
			out = append(out, idx)
		}
		return out
	}

	a, b := picks(9), picks(9)
	distinct := map[int]bool{}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at pick %d: %v vs %v", i, a, b)
		}
		distinct[a[i]] = true
	}
	if len(distinct) < 2 {
		t.Fatalf("picks never vary: %v", a)
	}
}
