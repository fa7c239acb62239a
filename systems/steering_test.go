package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/softbody-labs/petri/components"
)

func newTestSteering() *SteeringSystem {
	return NewSteeringSystem(rand.New(rand.NewSource(42)), testConfig())
}

// ---------- Flee / chase ----------

func TestDecide_FleesHeavierOpponentInDangerRange(t *testing.T) {
	s := newTestSteering()
	bot := components.NewBody(100)

	opps := []Opponent{{DX: 100, DY: 0, Dist: 100, Mass: 200}}
	d := s.Decide(&bot, components.RoleAgent, 0, 0, false, opps)

	if !d.HasVelocity {
		t.Fatal("a heavier opponent in danger range must produce a flee velocity")
	}
	if d.VX >= 0 {
		t.Errorf("VX = %f, want negative (away from the threat)", d.VX)
	}
	if !near(d.VY, 0) {
		t.Errorf("VY = %f, want 0", d.VY)
	}
}

func TestDecide_ChasesLighterOpponentInPreyRange(t *testing.T) {
	s := newTestSteering()
	bot := components.NewBody(100)

	opps := []Opponent{{DX: 0, DY: 200, Dist: 200, Mass: 50}}
	d := s.Decide(&bot, components.RoleAgent, 0, 0, false, opps)

	if !d.HasVelocity {
		t.Fatal("a lighter opponent in prey range must produce a chase velocity")
	}
	if d.VY <= 0 {
		t.Errorf("VY = %f, want positive (toward the prey)", d.VY)
	}
}

func TestDecide_SpeedWithinConfiguredRange(t *testing.T) {
	s := newTestSteering()
	bot := components.NewBody(100)
	opps := []Opponent{{DX: 100, DY: 0, Dist: 100, Mass: 200}}

	for i := 0; i < 50; i++ {
		d := s.Decide(&bot, components.RoleAgent, 0, 0, false, opps)
		if !d.HasVelocity {
			t.Fatal("expected a velocity")
		}
		speed := length(d.VX, d.VY)
		if speed < 0.5-0.001 || speed > 2.0+0.001 {
			t.Fatalf("speed = %f, want within [0.5, 2.0]", speed)
		}
	}
}

func TestDecide_NoStimulusKeepsHeading(t *testing.T) {
	s := newTestSteering()
	bot := components.NewBody(100)

	tests := []struct {
		name string
		opps []Opponent
	}{
		{name: "no opponents", opps: nil},
		{name: "near-equal mass", opps: []Opponent{{DX: 50, DY: 0, Dist: 50, Mass: 100}}},
		{name: "threat out of range", opps: []Opponent{{DX: 350, DY: 0, Dist: 350, Mass: 500}}},
		{name: "prey out of range", opps: []Opponent{{DX: 450, DY: 0, Dist: 450, Mass: 10}}},
		{name: "identical centers", opps: []Opponent{{DX: 0, DY: 0, Dist: 0, Mass: 500}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := s.Decide(&bot, components.RoleAgent, 1, 0, false, tc.opps)
			if d.HasVelocity {
				t.Errorf("velocity = (%f, %f), want none without stimulus", d.VX, d.VY)
			}
			if d.Split {
				t.Error("no split expected")
			}
		})
	}
}

func TestDecide_OpposingPullsCancel(t *testing.T) {
	s := newTestSteering()
	bot := components.NewBody(100)

	// Two equal threats on opposite sides: the accumulated field is the
	// zero vector, so the agent keeps its heading rather than snapping
	// to an arbitrary direction.
	opps := []Opponent{
		{DX: 100, DY: 0, Dist: 100, Mass: 200},
		{DX: -100, DY: 0, Dist: 100, Mass: 200},
	}
	d := s.Decide(&bot, components.RoleAgent, 0, 1, false, opps)

	if d.HasVelocity {
		t.Errorf("velocity = (%f, %f), want none for a canceling field", d.VX, d.VY)
	}
}

func TestDecide_BossSensesPreyFarther(t *testing.T) {
	s := newTestSteering()
	bot := components.NewBody(400)

	opps := []Opponent{{DX: 500, DY: 0, Dist: 500, Mass: 50}}

	if d := s.Decide(&bot, components.RoleAgent, 0, 0, false, opps); d.HasVelocity {
		t.Error("a regular agent must not sense prey at 500")
	}
	if d := s.Decide(&bot, components.RoleBoss, 0, 0, false, opps); !d.HasVelocity {
		t.Error("a boss must sense prey at 500")
	}
}

// ---------- Split trigger ----------

func TestDecide_SplitOnSmallPreyInRange(t *testing.T) {
	s := newTestSteering()
	bot := components.NewBody(300)

	opps := []Opponent{{DX: 100, DY: 0, Dist: 100, Mass: 90}}
	d := s.Decide(&bot, components.RoleAgent, 0, 1, true, opps)

	if !d.Split {
		t.Fatal("small prey in split range with a ready cooldown must trigger a split")
	}
	// Split heading is the current (normalized) velocity.
	if !near(d.DirX, 0) || !near(d.DirY, 1) {
		t.Errorf("split dir = (%f, %f), want (0, 1)", d.DirX, d.DirY)
	}
}

func TestDecide_SplitBlockedByCooldown(t *testing.T) {
	s := newTestSteering()
	bot := components.NewBody(300)

	opps := []Opponent{{DX: 100, DY: 0, Dist: 100, Mass: 90}}
	d := s.Decide(&bot, components.RoleAgent, 0, 1, false, opps)

	if d.Split {
		t.Error("no split while the cooldown is running")
	}
	if !d.HasVelocity {
		t.Error("the chase pull must still apply")
	}
}

func TestDecide_SplitThresholdGate(t *testing.T) {
	s := newTestSteering()
	bot := components.NewBody(300)

	// Prey at 101+ mass is above a third of 300: chase, don't split.
	opps := []Opponent{{DX: 100, DY: 0, Dist: 100, Mass: 150}}
	d := s.Decide(&bot, components.RoleAgent, 0, 1, true, opps)

	if d.Split {
		t.Error("prey above the split threshold must not trigger a split")
	}
	if !d.HasVelocity {
		t.Error("the chase pull must still apply")
	}
}

func TestDecide_SplitRangeGate(t *testing.T) {
	s := newTestSteering()
	bot := components.NewBody(300)

	opps := []Opponent{{DX: 200, DY: 0, Dist: 200, Mass: 90}}
	d := s.Decide(&bot, components.RoleAgent, 0, 1, true, opps)

	if d.Split {
		t.Error("prey beyond split range must not trigger a split")
	}
}

func TestDecide_BossSplitThresholdIsLooser(t *testing.T) {
	s := newTestSteering()
	bot := components.NewBody(300)

	// 120/300 = 0.4: above the agent third, below the boss 0.45.
	opps := []Opponent{{DX: 100, DY: 0, Dist: 100, Mass: 120}}

	if d := s.Decide(&bot, components.RoleAgent, 0, 1, true, opps); d.Split {
		t.Error("regular agent must not split on 0.4-ratio prey")
	}
	if d := s.Decide(&bot, components.RoleBoss, 0, 1, true, opps); !d.Split {
		t.Error("boss should split on 0.4-ratio prey")
	}
}

func TestDecide_StationarySplitLungesAtPrey(t *testing.T) {
	s := newTestSteering()
	bot := components.NewBody(300)

	opps := []Opponent{{DX: 0, DY: -100, Dist: 100, Mass: 90}}
	d := s.Decide(&bot, components.RoleAgent, 0, 0, true, opps)

	if !d.Split {
		t.Fatal("expected a split")
	}
	if !near(d.DirX, 0) || !near(d.DirY, -1) {
		t.Errorf("split dir = (%f, %f), want straight at the prey", d.DirX, d.DirY)
	}
}

func TestDecideView_ExcludesSelfAndRemoved(t *testing.T) {
	s := newTestSteering()
	w := ecs.NewWorld()
	mapper := ecs.NewMap6[
		components.Position,
		components.Velocity,
		components.Impulse,
		components.Body,
		components.Identity,
		components.SplitClock,
	](w)
	filter := ecs.NewFilter6[
		components.Position,
		components.Velocity,
		components.Impulse,
		components.Body,
		components.Identity,
		components.SplitClock,
	](w)

	spawn := func(x, y, mass float32, role components.Role) {
		pos := components.Position{X: x, Y: y}
		vel := components.Velocity{}
		imp := components.Impulse{}
		body := components.NewBody(mass)
		id := components.Identity{Role: role}
		clock := components.SplitClock{}
		mapper.NewEntity(&pos, &vel, &imp, &body, &id, &clock)
	}

	spawn(100, 100, 100, components.RoleAgent) // the bot
	spawn(150, 100, 500, components.RoleAgent) // threat
	spawn(50, 100, 500, components.RoleAgent)  // threat, but removed below

	var views []BodyView
	query := filter.Query()
	for query.Next() {
		pos, vel, imp, body, id, clock := query.Get()
		views = append(views, BodyView{
			Entity: query.Entity(),
			Pos:    pos,
			Vel:    vel,
			Imp:    imp,
			Body:   body,
			ID:     *id,
			Clock:  clock,
		})
	}
	if len(views) != 3 {
		t.Fatalf("views = %d, want 3", len(views))
	}

	var bot *BodyView
	for i := range views {
		switch {
		case near(views[i].Pos.X, 100):
			bot = &views[i]
		case near(views[i].Pos.X, 50):
			views[i].Removed = true
		}
	}

	d, opps := s.DecideView(bot, views, false, nil)
	if len(opps) != 1 {
		t.Fatalf("opponents = %d, want 1 (self and removed excluded)", len(opps))
	}
	if !d.HasVelocity || d.VX >= 0 {
		t.Errorf("velocity = (%f, %f), want a flee away from the live threat", d.VX, d.VY)
	}
}

func TestDecide_SplitFeedsSplitter(t *testing.T) {
	s := newTestSteering()
	splitter := NewSplitMergeSystem(testConfig())
	body := components.NewBody(300)

	opps := []Opponent{{DX: 100, DY: 0, Dist: 100, Mass: 90}}
	d := s.Decide(&body, components.RoleAgent, 1, 0, true, opps)
	if !d.Split {
		t.Fatal("expected a split")
	}

	pos := components.Position{X: 50, Y: 50}
	imp := components.Impulse{}
	clock := components.SplitClock{}
	child, ok := splitter.Split(&pos, &imp, &body, &clock, components.Identity{Role: components.RoleAgent}, d.DirX, d.DirY, 8000)
	if !ok {
		t.Fatal("splitter should accept the steering decision")
	}
	if !near(child.Mass, 150) || !near(body.Mass, 150) {
		t.Errorf("masses = %f / %f, want 150 / 150", child.Mass, body.Mass)
	}
}
