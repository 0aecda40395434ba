package system

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

var ErrNothingToSpawn = errors.New("spawn: no spawnable constructors")

// PickRequest describes the registry to a Picker. Index 0 is the ground.
type PickRequest struct {
	Count   int
	Spawned int
	Names   []string
}

// Picker chooses which constructor index to spawn next. Results outside
// [1, Count) are rejected by the spawner.
type Picker interface {
	Pick(req PickRequest) (int, error)
}

// UniformPicker picks any non-ground constructor with equal odds.
type UniformPicker struct {
	rng *rand.Rand
}

// NewUniformPicker seeds from the clock when seed is 0.
func NewUniformPicker(seed int64) *UniformPicker {
	return &UniformPicker{rng: newRand(seed)}
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (p *UniformPicker) Pick(req PickRequest) (int, error) {
	if req.Count < 2 {
		return 0, ErrNothingToSpawn
	}
	return 1 + p.rng.Intn(req.Count-1), nil
}

// ScriptPicker runs a tengo script per pick. The script sees the globals
// count, spawned, names and seed, and must define pick. seed changes on every
// pick and follows from the picker's own seed, so scripts that draw from
// rand.rand(seed) repeat across runs.
type ScriptPicker struct {
	name     string
	compiled *tengo.Compiled
	rng      *rand.Rand
}

// NewScriptPicker compiles src. A seed of 0 seeds from the clock.
func NewScriptPicker(name string, src []byte, seed int64) (*ScriptPicker, error) {
	script := tengo.NewScript(src)
	_ = script.Add("count", 0)
	_ = script.Add("spawned", 0)
	_ = script.Add("names", []interface{}{})
	_ = script.Add("seed", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("spawn: compile %s: %w", name, err)
	}
	return &ScriptPicker{name: name, compiled: compiled, rng: newRand(seed)}, nil
}

func (p *ScriptPicker) Name() string {
	return p.name
}

func (p *ScriptPicker) Pick(req PickRequest) (int, error) {
	if req.Count < 2 {
		return 0, ErrNothingToSpawn
	}
	names := make([]interface{}, len(req.Names))
	for i, n := range req.Names {
		names[i] = n
	}
	if err := p.compiled.Set("count", req.Count); err != nil {
		return 0, err
	}
	if err := p.compiled.Set("spawned", req.Spawned); err != nil {
		return 0, err
	}
	if err := p.compiled.Set("names", names); err != nil {
		return 0, err
	}
	if err := p.compiled.Set("seed", p.rng.Int63()); err != nil {
		return 0, err
	}
	if err := p.compiled.Run(); err != nil {
		return 0, fmt.Errorf("spawn: run %s: %w", p.name, err)
	}
	if !p.compiled.IsDefined("pick") {
		return 0, fmt.Errorf("spawn: script %s does not define pick", p.name)
	}
	v := p.compiled.Get("pick")
	if v.ValueType() != "int" {
		return 0, fmt.Errorf("spawn: script %s set pick to %s, want int", p.name, v.ValueType())
	}
	return v.Int(), nil
}
