package game

import (
	"math"
	"testing"

	cfgpkg "github.com/softbody-labs/petri/config"
	"github.com/softbody-labs/petri/telemetry"
)

// newDefaultGame builds a headless game on the embedded defaults.
func newDefaultGame(seed int64) *Game {
	cfgpkg.MustInit("")
	return NewGameWithOptions(Options{Seed: seed, Headless: true, StepsPerUpdate: 1})
}

// newBareGame builds a headless game with an empty arena: no pellets,
// bonuses, or agents, just the local player body. Split/merge tests
// need mass arithmetic undisturbed by collectible pickups.
func newBareGame(t *testing.T, seed int64) *Game {
	t.Helper()
	cfg, err := cfgpkg.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Population.Pellets = 0
	cfg.Population.Agents = 0
	cfg.Population.Bosses = 0
	cfg.Population.Bonuses = 0
	return NewGameWithOptions(Options{Seed: seed, Headless: true, StepsPerUpdate: 1, Config: cfg})
}

func TestNewGame_InitialPopulation(t *testing.T) {
	g := newDefaultGame(1)
	defer g.Close()

	if got := g.playerBodies[LocalGroup]; got != 1 {
		t.Errorf("player bodies = %d, want 1", got)
	}
	if g.agentBodies != 40 {
		t.Errorf("agent bodies = %d, want 40", g.agentBodies)
	}
	if g.pellets.Count() != 1000 {
		t.Errorf("pellets = %d, want 1000", g.pellets.Count())
	}
	if g.bonuses.Count() != 12 {
		t.Errorf("bonuses = %d, want 12", g.bonuses.Count())
	}
	if math.Abs(float64(g.PlayerMass(LocalGroup)-100)) > 0.001 {
		t.Errorf("player mass = %f, want 100", g.PlayerMass(LocalGroup))
	}
	if g.GameOver() {
		t.Error("a fresh game must not be over")
	}
}

func TestStep_AdvancesTick(t *testing.T) {
	g := newDefaultGame(1)
	defer g.Close()

	for i := 1; i <= 10; i++ {
		g.Step(int64(i) * TickMs)
	}
	if g.Tick() != 10 {
		t.Errorf("tick = %d, want 10", g.Tick())
	}
}

func TestUpdateHeadless_DeterministicForSeed(t *testing.T) {
	run := func() (int32, float32, int) {
		g := newDefaultGame(9)
		defer g.Close()
		for i := 0; i < 50; i++ {
			g.UpdateHeadless()
		}
		return g.Tick(), g.PlayerMass(LocalGroup), g.agentBodies
	}

	tick1, mass1, agents1 := run()
	tick2, mass2, agents2 := run()

	if tick1 != tick2 || mass1 != mass2 || agents1 != agents2 {
		t.Errorf("runs diverged: (%d, %f, %d) vs (%d, %f, %d)",
			tick1, mass1, agents1, tick2, mass2, agents2)
	}
}

func TestRequestSplit_SecondBodyConservesMass(t *testing.T) {
	g := newBareGame(t, 1)
	defer g.Close()

	g.RequestSplit(LocalGroup)
	g.Step(TickMs)

	if got := g.playerBodies[LocalGroup]; got != 2 {
		t.Fatalf("player bodies = %d, want 2 after the split", got)
	}
	if mass := g.PlayerMass(LocalGroup); math.Abs(float64(mass-100)) > 0.001 {
		t.Errorf("total player mass = %f, want conserved 100", mass)
	}
}

func TestManualSplit_StopsBelowMinimumMass(t *testing.T) {
	g := newBareGame(t, 1)
	defer g.Close()

	// 100 -> 2x50 -> 4x25; quarters are below the minimum viable mass,
	// so further requests are no-ops.
	for i := 1; i <= 5; i++ {
		g.RequestSplit(LocalGroup)
		g.Step(int64(i) * TickMs)
	}

	if got := g.playerBodies[LocalGroup]; got != 4 {
		t.Errorf("player bodies = %d, want 4", got)
	}
	if mass := g.PlayerMass(LocalGroup); math.Abs(float64(mass-100)) > 0.001 {
		t.Errorf("total player mass = %f, want conserved 100", mass)
	}
}

func TestSplitThenMergeRestoresSingleBody(t *testing.T) {
	g := newBareGame(t, 1)
	defer g.Close()

	g.RequestSplit(LocalGroup)
	g.Step(TickMs)
	if got := g.playerBodies[LocalGroup]; got != 2 {
		t.Fatalf("player bodies = %d, want 2 after the split", got)
	}

	// Both bodies seek the same target and sit on it once the split
	// impulses decay; past the cooldown they merge back.
	for ms := 2 * TickMs; ms <= 4000; ms += TickMs {
		g.Step(ms)
	}

	if got := g.playerBodies[LocalGroup]; got != 1 {
		t.Fatalf("player bodies = %d, want 1 after the merge", got)
	}
	if mass := g.PlayerMass(LocalGroup); math.Abs(float64(mass-100)) > 0.001 {
		t.Errorf("player mass = %f, want 100 restored by the merge", mass)
	}
}

func TestMerge_BlockedInsideCooldown(t *testing.T) {
	g := newBareGame(t, 1)
	defer g.Close()

	g.RequestSplit(LocalGroup)
	g.Step(TickMs)

	// 2000ms is well past the impulse decay but inside the cooldown.
	for ms := 2 * TickMs; ms <= 2000; ms += TickMs {
		g.Step(ms)
	}

	if got := g.playerBodies[LocalGroup]; got != 2 {
		t.Errorf("player bodies = %d, want still 2 inside the cooldown", got)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newBareGame(t, 1)
	defer g.Close()

	g.collectViews()
	if len(g.views) != 1 {
		t.Fatalf("views = %d, want just the player body", len(g.views))
	}
	g.views[0].Removed = true
	g.applyRemovals()
	g.refreshPopulation()

	if !g.GameOver() {
		t.Fatal("an emptied local group must flag game over")
	}

	g.Restart()

	if g.GameOver() {
		t.Error("restart must clear the terminal state")
	}
	if got := g.playerBodies[LocalGroup]; got != 1 {
		t.Errorf("player bodies = %d, want 1 after restart", got)
	}
}

func TestAgentPopulationReplenished(t *testing.T) {
	g := newDefaultGame(1)
	defer g.Close()

	g.collectViews()
	marked := 0
	for i := range g.views {
		if g.views[i].ID.Role.IsAgent() && marked < 3 {
			g.views[i].Removed = true
			marked++
		}
	}
	if marked != 3 {
		t.Fatalf("marked = %d agents, want 3", marked)
	}

	g.applyRemovals()
	g.refreshPopulation()

	if g.agentBodies != 40 {
		t.Errorf("agent bodies = %d, want replenished to 40", g.agentBodies)
	}
}

func TestUpdate_PausedSkipsStepping(t *testing.T) {
	g := newDefaultGame(1)
	defer g.Close()

	g.paused = true
	g.Update(TickMs)

	if g.Tick() != 0 {
		t.Errorf("tick = %d, want 0 while paused", g.Tick())
	}
}

func TestStatsCallbackReceivesWindows(t *testing.T) {
	cfg, err := cfgpkg.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	var windows []int32
	g := NewGameWithOptions(Options{
		Seed:           1,
		Headless:       true,
		StepsPerUpdate: 1,
		StatsWindowSec: float64(TickMs) / 1000, // one-tick windows
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats.WindowEnd)
		},
	})
	defer g.Close()

	for i := 1; i <= 3; i++ {
		g.Step(int64(i) * TickMs)
	}

	if len(windows) != 3 {
		t.Fatalf("windows = %d, want 3", len(windows))
	}
	if windows[0] != 1 || windows[2] != 3 {
		t.Errorf("window end ticks = %v, want [1 2 3]", windows)
	}
}

func TestRequestSplit_IsEdgeTriggered(t *testing.T) {
	g := newBareGame(t, 1)
	defer g.Close()

	g.RequestSplit(LocalGroup)
	g.Step(TickMs)
	g.Step(2 * TickMs)

	// One request yields exactly one split, not one per tick.
	if got := g.playerBodies[LocalGroup]; got != 2 {
		t.Errorf("player bodies = %d, want 2", got)
	}
}
