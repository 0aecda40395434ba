package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/shapefall/common"
	"github.com/milk9111/shapefall/ecs"
	"github.com/milk9111/shapefall/ecs/component"
	"github.com/milk9111/shapefall/ecs/entity"
	"github.com/milk9111/shapefall/ecs/system"
	"github.com/milk9111/shapefall/prefabs"
	"github.com/milk9111/shapefall/render"
	"github.com/milk9111/shapefall/view"
)

// Options are the command-line settings of a run.
type Options struct {
	Scene  string
	Script string
	Seed   int64
	Debug  bool
}

type Game struct {
	frames int
	debug  bool
	paused bool
	quit   bool

	clock    *common.Clock
	maxDelta float64

	world     *ecs.World
	scene     *entity.Scene
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	spawner   *system.SpawnSystem
	bodies    *render.BodyRenderer
	cam       *view.Camera

	sceneName   string
	scriptName  string
	scriptFlag  bool
	seed        int64
	background  color.Color
	lastSpawned string

	watcher   *prefabs.Watcher
	pauseUI   *ebitenui.UI
	statsText *widget.Text
	clipboard bool
}

// NewGame loads the scene and wires the per-frame systems in the order
// ground, physics, spawn.
func NewGame(opts Options) (*Game, error) {
	spec, err := prefabs.LoadSceneSpec(opts.Scene)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	scene, err := entity.BuildScene(world, spec)
	if err != nil {
		return nil, err
	}

	g := &Game{
		debug:      opts.Debug,
		clock:      common.NewClock(),
		maxDelta:   spec.Frame.MaxDelta,
		world:      world,
		scene:      scene,
		sceneName:  opts.Scene,
		scriptName: opts.Script,
		scriptFlag: opts.Script != "",
		seed:       opts.Seed,
		background: spec.Colors.Background.Or(color.NRGBA{R: 0x4d, G: 0x4d, B: 0x4d, A: 0xff}),
		cam:        view.NewCamera(common.BaseWidth, common.BaseHeight, spec.Camera.X, spec.Camera.Y, spec.Camera.PixelsPerUnit),
	}
	if g.sceneName == "" {
		g.sceneName = prefabs.DefaultScene
	}
	if g.scriptName == "" {
		g.scriptName = spec.Spawn.Script
	}

	picker, err := g.loadPicker()
	if err != nil {
		scene.Close()
		return nil, err
	}

	g.physics = system.NewPhysicsSystem(scene.Physics)
	g.spawner = system.NewSpawnSystem(scene.Registry, scene.Physics, picker, entity.BodyStyle(spec), opts.Seed)
	g.scheduler = ecs.NewScheduler(
		system.NewGroundSystem(),
		g.physics,
		g.spawner,
	)
	g.bodies = render.NewBodyRenderer(g.cam)

	if dirs := prefabs.WatchDirs(prefabs.Dir); len(dirs) > 0 {
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.clipboard = initClipboard()
	g.pauseUI = NewPauseUI(g)

	return g, nil
}

// loadPicker returns the scripted picker when one is configured and the
// seeded uniform picker otherwise.
func (g *Game) loadPicker() (system.Picker, error) {
	if g.scriptName == "" {
		return system.NewUniformPicker(g.seed), nil
	}
	src, err := prefabs.LoadScript(g.scriptName)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", g.scriptName, err)
	}
	return system.NewScriptPicker(g.scriptName, src, g.seed)
}

// swapPicker installs the picker for the current script name and logs it.
func (g *Game) swapPicker() {
	picker, err := g.loadPicker()
	if err != nil {
		log.Printf("prefabs: reload picker: %v", err)
		return
	}
	g.spawner.SetPicker(picker)
	if sp, ok := picker.(*system.ScriptPicker); ok {
		log.Printf("prefabs: spawn picker is script %s", sp.Name())
	} else {
		log.Printf("prefabs: spawn picker is uniform")
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}

	g.reloadPrefabs()

	dt := common.ClampDelta(g.clock.Tick(), g.maxDelta)
	if g.paused {
		g.refreshStats()
		g.pauseUI.Update()
		return nil
	}

	g.scheduler.Update(g.world, dt)
	for _, ev := range system.SpawnEvents(g.world) {
		g.lastSpawned = ev.Constructor
		if g.debug {
			log.Printf("spawn: #%d %s (entity %s)", ev.Serial, ev.Constructor, ev.Entity)
		}
	}
	return nil
}

func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	for _, c := range g.watcher.Poll() {
		switch c.Kind {
		case prefabs.ChangeScene:
			if c.Name != g.sceneName {
				continue
			}
			spec, err := prefabs.LoadSceneSpec(g.sceneName)
			if err != nil {
				log.Printf("prefabs: reload %s: %v", c.Name, err)
				continue
			}
			if restart := g.scene.Apply(g.world, spec); len(restart) > 0 {
				log.Printf("prefabs: %s: %s need a restart to apply", c.Name, strings.Join(restart, ", "))
			}
			g.spawner.SetStyle(entity.BodyStyle(spec))
			g.maxDelta = spec.Frame.MaxDelta
			g.background = spec.Colors.Background.Or(g.background)
			g.cam.X, g.cam.Y, g.cam.PixelsPerUnit = spec.Camera.X, spec.Camera.Y, spec.Camera.PixelsPerUnit
			log.Printf("prefabs: reloaded %s", c.Name)
			if !g.scriptFlag && spec.Spawn.Script != g.scriptName {
				g.scriptName = spec.Spawn.Script
				g.swapPicker()
			}
		case prefabs.ChangeScript:
			if g.scriptName == "" || c.Name != scriptFile(g.scriptName) {
				continue
			}
			g.swapPicker()
		}
	}
	for {
		select {
		case err := <-g.watcher.Errors:
			log.Printf("prefabs: watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)

	g.bodies.Draw(g.world, screen)
	if g.debug {
		render.DebugDraw(screen, g.cam, g.scene.Physics)
	}

	ebitenutil.DebugPrint(screen, g.Stats().String())

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Stats is a snapshot of the simulation for the HUD and the pause panel.
type Stats struct {
	Frames         int
	FPS            float64
	Bodies         int
	Spawned        int
	Drawn          int
	SubSteps       int
	ActiveContacts int
	TotalContacts  int
	LastSpawned    string
}

func (s Stats) String() string {
	return fmt.Sprintf("FPS: %.1f  Bodies: %d  Spawned: %d (last %s)  Drawn: %d  Ground contacts: %d (%d total)",
		s.FPS, s.Bodies, s.Spawned, s.LastSpawned, s.Drawn, s.ActiveContacts, s.TotalContacts)
}

// Report is the multi-line form shown in the pause panel and copied to the
// clipboard.
func (s Stats) Report() string {
	return fmt.Sprintf("frames: %d\nfps: %.1f\nbodies: %d\nspawned: %d\nlast spawned: %s\ndrawn: %d\nsub-steps: %d\nground contacts: %d (%d total)",
		s.Frames, s.FPS, s.Bodies, s.Spawned, s.LastSpawned, s.Drawn, s.SubSteps, s.ActiveContacts, s.TotalContacts)
}

func (g *Game) Stats() Stats {
	st := Stats{
		Frames:   g.frames,
		FPS:      ebiten.ActualFPS(),
		Bodies:   g.scene.Physics.Len(),
		Drawn:    g.bodies.Drawn,
		SubSteps: g.physics.SubSteps,

		LastSpawned: g.lastSpawned,
	}
	if st.LastSpawned == "" {
		st.LastSpawned = "none"
	}
	if sp, ok := ecs.Get(g.world, g.scene.Spawner, component.SpawnerComponent.Kind()); ok {
		st.Spawned = sp.Spawned
	}
	c := g.scene.Physics.Contacts()
	st.ActiveContacts, st.TotalContacts = c.Active, c.Total
	return st
}

// Close releases everything NewGame acquired, newest first.
func (g *Game) Close() error {
	var errs []error
	if g.watcher != nil {
		errs = append(errs, g.watcher.Close())
	}
	for _, e := range g.world.Entities() {
		g.world.DestroyEntity(e)
	}
	g.scene.Close()
	return errors.Join(errs...)
}

// scriptFile is the base name a watcher reports for a configured script.
func scriptFile(name string) string {
	base := filepath.Base(filepath.FromSlash(name))
	if !strings.HasSuffix(base, ".tengo") {
		base += ".tengo"
	}
	return base
}
