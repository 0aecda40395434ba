package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultScene is the embedded scene file.
const DefaultScene = "scene.yaml"

var ErrInvalidScene = errors.New("prefabs: invalid scene")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type SceneSpec struct {
	Name         string            `yaml:"name"`
	Gravity      float64           `yaml:"gravity"`
	Frame        FrameSpec         `yaml:"frame"`
	Camera       CameraSpec        `yaml:"camera"`
	Ground       GroundSpec        `yaml:"ground"`
	Spawn        SpawnSpec         `yaml:"spawn"`
	Colors       ColorsSpec        `yaml:"colors"`
	Constructors []ConstructorSpec `yaml:"constructors"`
}

// LoadSceneSpec reads, defaults and validates a scene file.
func LoadSceneSpec(filename string) (*SceneSpec, error) {
	if filename == "" {
		filename = DefaultScene
	}
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// ParseSceneSpec is LoadSceneSpec for in-memory data.
func ParseSceneSpec(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

type FrameSpec struct {
	MaxDelta    float64 `yaml:"max_delta"`
	FixedStep   float64 `yaml:"fixed_step"`
	MaxSubSteps int     `yaml:"max_sub_steps"`
	Iterations  int     `yaml:"iterations"`
}

type CameraSpec struct {
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
}

type GroundSpec struct {
	Constructor string  `yaml:"constructor"`
	Amplitude   float64 `yaml:"amplitude"`
	Speed       float64 `yaml:"speed"`
}

type SpawnSpec struct {
	Interval float64 `yaml:"interval"`
	Height   float64 `yaml:"height"`
	// Script names a tengo picker under scripts/; empty picks uniformly.
	Script string `yaml:"script"`
}

type ColorsSpec struct {
	Background   *YAMLColor `yaml:"background"`
	Outline      *YAMLColor `yaml:"outline"`
	Ground       *YAMLColor `yaml:"ground"`
	OutlineWidth float32    `yaml:"outline_width"`
}

type ConstructorSpec struct {
	Name        string    `yaml:"name"`
	Shape       string    `yaml:"shape"`
	HalfExtents []float64 `yaml:"half_extents"`
	Radius      float64   `yaml:"radius"`
	Height      float64   `yaml:"height"`
	Mass        float64   `yaml:"mass"`
	Friction    *float64  `yaml:"friction"`
	Elasticity  *float64  `yaml:"elasticity"`
}

// HalfExtent returns the i-th half extent, or 0 when absent.
func (c ConstructorSpec) HalfExtent(i int) float64 {
	if i < 0 || i >= len(c.HalfExtents) {
		return 0
	}
	return c.HalfExtents[i]
}

// ApplyDefaults fills unset tunables with the values the demo was tuned for.
func (s *SceneSpec) ApplyDefaults() {
	if s.Gravity == 0 {
		s.Gravity = -25
	}
	if s.Frame.MaxDelta <= 0 {
		s.Frame.MaxDelta = 1.0 / 30.0
	}
	if s.Frame.FixedStep <= 0 {
		s.Frame.FixedStep = 1.0 / 60.0
	}
	if s.Frame.MaxSubSteps <= 0 {
		s.Frame.MaxSubSteps = 5
	}
	if s.Frame.Iterations <= 0 {
		s.Frame.Iterations = 10
	}
	if s.Camera.PixelsPerUnit <= 0 {
		s.Camera.PixelsPerUnit = 32
	}
	if s.Ground.Constructor == "" {
		s.Ground.Constructor = "ground"
	}
	if s.Spawn.Interval <= 0 {
		s.Spawn.Interval = 1.5
	}
	if s.Spawn.Height == 0 {
		s.Spawn.Height = 9
	}
	if s.Colors.Background == nil {
		s.Colors.Background = &YAMLColor{Color: color.NRGBA{R: 0x4d, G: 0x4d, B: 0x4d, A: 0xff}}
	}
	if s.Colors.Outline == nil {
		s.Colors.Outline = &YAMLColor{Color: color.NRGBA{G: 0xff, A: 0xff}}
	}
	if s.Colors.Ground == nil {
		s.Colors.Ground = s.Colors.Outline
	}
	if s.Colors.OutlineWidth <= 0 {
		s.Colors.OutlineWidth = 1
	}
}

// Validate checks the invariants the scene builder relies on: the ground
// constructor comes first and is massless, and everything after it is
// dynamic.
func (s *SceneSpec) Validate() error {
	if len(s.Constructors) < 2 {
		return fmt.Errorf("%w: need a ground and at least one spawnable constructor", ErrInvalidScene)
	}
	if s.Constructors[0].Name != s.Ground.Constructor {
		return fmt.Errorf("%w: first constructor %q must be the ground %q", ErrInvalidScene, s.Constructors[0].Name, s.Ground.Constructor)
	}
	if s.Constructors[0].Mass != 0 {
		return fmt.Errorf("%w: ground %q must have zero mass", ErrInvalidScene, s.Ground.Constructor)
	}
	seen := make(map[string]bool, len(s.Constructors))
	for i, c := range s.Constructors {
		if c.Name == "" {
			return fmt.Errorf("%w: constructor %d has no name", ErrInvalidScene, i)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate constructor %q", ErrInvalidScene, c.Name)
		}
		seen[c.Name] = true
		if i > 0 && c.Mass <= 0 {
			return fmt.Errorf("%w: constructor %q must have positive mass", ErrInvalidScene, c.Name)
		}
	}
	if s.Frame.MaxDelta < s.Frame.FixedStep {
		return fmt.Errorf("%w: max_delta %v is shorter than fixed_step %v", ErrInvalidScene, s.Frame.MaxDelta, s.Frame.FixedStep)
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the color, or fallback when unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
