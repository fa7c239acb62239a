// Package game wires the ECS world, systems, and collectible fields
// into the per-tick simulation pipeline.
package game

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/softbody-labs/petri/camera"
	"github.com/softbody-labs/petri/components"
	cfgpkg "github.com/softbody-labs/petri/config"
	"github.com/softbody-labs/petri/inspector"
	"github.com/softbody-labs/petri/systems"
	"github.com/softbody-labs/petri/telemetry"
	"github.com/softbody-labs/petri/ui"
)

// TickMs is the simulation tick length in clock milliseconds. The
// headless driver uses it to synthesize a deterministic clock.
const TickMs int64 = 16

// LocalGroup is the player group driven by this process's input.
const LocalGroup uint8 = 0

// Options configures a new game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// Config overrides the global configuration for this instance.
	// Batch drivers run many games with varied configs in one process.
	Config *cfgpkg.Config

	// StatsCallback receives every closed stats window in addition to
	// the CSV output.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *cfgpkg.Config

	// Entity mappers over the six body components
	bodyMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Impulse,
		components.Body,
		components.Identity,
		components.SplitClock,
	]
	bodyFilter *ecs.Filter6[
		components.Position,
		components.Velocity,
		components.Impulse,
		components.Body,
		components.Identity,
		components.SplitClock,
	]

	// Systems
	movement *systems.MovementSystem
	steering *systems.SteeringSystem
	consumer *systems.ConsumptionSystem
	splitter *systems.SplitMergeSystem

	// Collectible fields (outside the ECS)
	pellets *systems.PelletField
	bonuses *systems.BonusField

	// Telemetry
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool
	statsHook func(telemetry.WindowStats)

	// Rendering (nil in headless mode)
	cam      *camera.Camera
	hud      *ui.HUD
	controls *ui.ControlsPanel
	inspect  *inspector.Inspector

	// Single-component lookups for the inspector panel
	posMap   *ecs.Map1[components.Position]
	velMap   *ecs.Map1[components.Velocity]
	bodyMap  *ecs.Map1[components.Body]
	idMap    *ecs.Map1[components.Identity]
	clockMap *ecs.Map1[components.SplitClock]

	// State
	bounds         systems.Bounds
	tick           int32
	nowMs          int64
	paused         bool
	stepsPerUpdate int

	// Per-group input state
	targets    map[uint8]systems.Target
	splitReqs  map[uint8]bool
	deadGroups map[uint8]bool

	// Population snapshot, refreshed each tick
	playerBodies map[uint8]int
	agentBodies  int

	// Scratch buffers reused across ticks
	views []systems.BodyView
	opps  []systems.Opponent

	screenWidth  float32
	screenHeight float32
}

// NewGame creates a game with default options and a fixed seed.
func NewGame() *Game {
	return NewGameWithOptions(Options{Seed: 42, Headless: true, StepsPerUpdate: 1})
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config()
	}
	world := ecs.NewWorld()

	g := &Game{
		world: world,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		bodyMapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Impulse,
			components.Body,
			components.Identity,
			components.SplitClock,
		](world),
		bodyFilter: ecs.NewFilter6[
			components.Position,
			components.Velocity,
			components.Impulse,
			components.Body,
			components.Identity,
			components.SplitClock,
		](world),
		bounds: systems.Bounds{
			Width:  cfg.Derived.WorldW32,
			Height: cfg.Derived.WorldH32,
		},
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
		logStats:       opts.LogStats,
		targets:        make(map[uint8]systems.Target),
		splitReqs:      make(map[uint8]bool),
		deadGroups:     make(map[uint8]bool),
		playerBodies:   make(map[uint8]int),
		screenWidth:    float32(cfg.Screen.Width),
		screenHeight:   float32(cfg.Screen.Height),
	}

	g.movement = systems.NewMovementSystem(world, g.bounds, cfg)
	g.steering = systems.NewSteeringSystem(g.rng, cfg)
	g.consumer = systems.NewConsumptionSystem(cfg)
	g.splitter = systems.NewSplitMergeSystem(cfg)

	g.pellets = systems.NewPelletField(g.bounds, cfg.Population.Pellets, g.rng, cfg)
	g.bonuses = systems.NewBonusField(g.bounds, cfg.Population.Bonuses, g.rng, cfg)

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, TickMs)
	g.statsHook = opts.StatsCallback

	if om, err := telemetry.NewOutputManager(opts.OutputDir); err == nil {
		g.output = om
		if err := g.output.WriteConfig(cfg); err != nil {
			Logf("writing config snapshot failed: %v", err)
		}
	} else {
		Logf("telemetry output disabled: %v", err)
	}

	if !opts.Headless {
		g.cam = camera.New(g.screenWidth, g.screenHeight, g.bounds.Width, g.bounds.Height)
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(1, 10)
		g.inspect = inspector.NewInspector(int32(g.screenWidth))
		g.posMap = ecs.NewMap1[components.Position](world)
		g.velMap = ecs.NewMap1[components.Velocity](world)
		g.bodyMap = ecs.NewMap1[components.Body](world)
		g.idMap = ecs.NewMap1[components.Identity](world)
		g.clockMap = ecs.NewMap1[components.SplitClock](world)
	}

	g.spawnInitialPopulation()
	g.refreshPopulation()

	return g
}

// Update runs input handling plus one or more simulation steps,
// advancing the injected clock by TickMs per step. nowMs must be
// monotonic across calls within a process run.
func (g *Game) Update(nowMs int64) {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(nowMs + int64(i)*TickMs)
	}
}

// UpdateHeadless runs simulation steps against a synthetic clock of
// TickMs per tick, keeping batch runs deterministic for a given seed.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(int64(g.tick+1) * TickMs)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// GameOver reports whether the local player group has no bodies left.
// A terminal state, not an error.
func (g *Game) GameOver() bool {
	return g.deadGroups[LocalGroup]
}

// SetTarget sets the point a player group's bodies seek. Supplied by
// the input collaborator each tick.
func (g *Game) SetTarget(group uint8, x, y float32) {
	g.targets[group] = systems.Target{X: x, Y: y}
}

// RequestSplit queues an edge-triggered manual split for a player
// group, consumed by the next step.
func (g *Game) RequestSplit(group uint8) {
	g.splitReqs[group] = true
}

// PlayerMass returns the total mass of a player group's bodies.
func (g *Game) PlayerMass(group uint8) float32 {
	var total float32
	query := g.bodyFilter.Query()
	for query.Next() {
		_, _, _, body, id, _ := query.Get()
		if id.Role == components.RolePlayer && id.Group == group {
			total += body.Mass
		}
	}
	return total
}

// Close flushes telemetry output.
func (g *Game) Close() error {
	return g.output.Close()
}
