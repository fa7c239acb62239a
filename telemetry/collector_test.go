package telemetry

import (
	"math"
	"testing"
)

func TestCollector_WindowTickMath(t *testing.T) {
	tests := []struct {
		name      string
		windowSec float64
		tickMs    int64
		wantTicks int32
	}{
		{name: "five seconds at 16ms", windowSec: 5.0, tickMs: 16, wantTicks: 312},
		{name: "one second at 16ms", windowSec: 1.0, tickMs: 16, wantTicks: 62},
		{name: "tiny window floors to one tick", windowSec: 0.001, tickMs: 16, wantTicks: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCollector(tc.windowSec, tc.tickMs)
			if c.windowDurationTicks != tc.wantTicks {
				t.Errorf("windowDurationTicks = %d, want %d", c.windowDurationTicks, tc.wantTicks)
			}
		})
	}
}

func TestCollector_WindowDone(t *testing.T) {
	c := NewCollector(1.0, 16) // 62 ticks per window

	if c.WindowDone(61) {
		t.Error("window should still be open at tick 61")
	}
	if !c.WindowDone(62) {
		t.Error("window should close at tick 62")
	}

	c.EndWindow(62)
	if c.WindowDone(123) {
		t.Error("next window should still be open at tick 123")
	}
	if !c.WindowDone(124) {
		t.Error("next window should close at tick 124")
	}
}

func TestCollector_EndWindowSnapshotsAndResets(t *testing.T) {
	c := NewCollector(5.0, 16)

	c.RecordPelletsEaten(12)
	c.RecordBonusesEaten(2)
	c.RecordAgentsEaten(3)
	c.RecordPlayersEaten(1)
	c.RecordSplit()
	c.RecordSplit()
	c.RecordMerges(1)
	c.RecordAgentRespawn()
	c.RecordPlayerGain(37.5)

	stats := c.EndWindow(312)

	if stats.WindowStart != 0 || stats.WindowEnd != 312 {
		t.Errorf("window = [%d, %d], want [0, 312]", stats.WindowStart, stats.WindowEnd)
	}
	if stats.PelletsEaten != 12 || stats.BonusesEaten != 2 {
		t.Errorf("collectibles = %d/%d, want 12/2", stats.PelletsEaten, stats.BonusesEaten)
	}
	if stats.AgentsEaten != 3 || stats.PlayersEaten != 1 {
		t.Errorf("bodies eaten = %d/%d, want 3/1", stats.AgentsEaten, stats.PlayersEaten)
	}
	if stats.Splits != 2 || stats.Merges != 1 || stats.AgentRespawns != 1 {
		t.Errorf("splits/merges/respawns = %d/%d/%d, want 2/1/1", stats.Splits, stats.Merges, stats.AgentRespawns)
	}
	if math.Abs(stats.PlayerGains-37.5) > 1e-9 {
		t.Errorf("PlayerGains = %f, want 37.5", stats.PlayerGains)
	}

	// The next window starts clean.
	next := c.EndWindow(624)
	if next.WindowStart != 312 || next.WindowEnd != 624 {
		t.Errorf("window = [%d, %d], want [312, 624]", next.WindowStart, next.WindowEnd)
	}
	if next.PelletsEaten != 0 || next.Splits != 0 || next.PlayerGains != 0 {
		t.Errorf("counters leaked into the next window: %+v", next)
	}
}

func TestWindowStats_FillMassDistribution(t *testing.T) {
	var s WindowStats
	s.FillMassDistribution([]float64{100, 200, 300})

	if math.Abs(s.MassMean-200) > 1e-9 {
		t.Errorf("MassMean = %f, want 200", s.MassMean)
	}
	if math.Abs(s.MassStdDev-100) > 1e-9 {
		t.Errorf("MassStdDev = %f, want 100 (sample stddev)", s.MassStdDev)
	}
}

func TestWindowStats_FillMassDistributionEdgeCases(t *testing.T) {
	var s WindowStats
	s.FillMassDistribution(nil)
	if s.MassMean != 0 || s.MassStdDev != 0 {
		t.Errorf("empty population should leave the distribution zeroed, got %+v", s)
	}

	s.FillMassDistribution([]float64{42})
	if math.Abs(s.MassMean-42) > 1e-9 {
		t.Errorf("MassMean = %f, want 42", s.MassMean)
	}
	if s.MassStdDev != 0 {
		t.Errorf("MassStdDev = %f, want 0 for a single body", s.MassStdDev)
	}
}
