// Package telemetry provides per-window simulation stats and CSV output.
package telemetry

// Collector accumulates simulation events within tick windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32

	windowStartTick int32

	// Event counters for the current window
	pelletsEaten  int
	bonusesEaten  int
	agentsEaten   int
	playersEaten  int
	splits        int
	merges        int
	agentRespawns int
	playerGains   float64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// tickMs: milliseconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, tickMs int64) *Collector {
	ticksPerWindow := int32(windowDurationSec * 1000 / float64(tickMs))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
	}
}

// RecordPelletsEaten records pellet consumptions.
func (c *Collector) RecordPelletsEaten(n int) {
	c.pelletsEaten += n
}

// RecordBonusesEaten records bonus structure consumptions.
func (c *Collector) RecordBonusesEaten(n int) {
	c.bonusesEaten += n
}

// RecordAgentsEaten records agent bodies consumed.
func (c *Collector) RecordAgentsEaten(n int) {
	c.agentsEaten += n
}

// RecordPlayersEaten records player bodies consumed.
func (c *Collector) RecordPlayersEaten(n int) {
	c.playersEaten += n
}

// RecordSplit records one split (manual or AI-triggered).
func (c *Collector) RecordSplit() {
	c.splits++
}

// RecordMerges records merges performed this tick.
func (c *Collector) RecordMerges(n int) {
	c.merges += n
}

// RecordAgentRespawn records one spawn-policy agent replacement.
func (c *Collector) RecordAgentRespawn() {
	c.agentRespawns++
}

// RecordPlayerGain records mass credited to player bodies.
func (c *Collector) RecordPlayerGain(mass float64) {
	c.playerGains += mass
}

// WindowDone reports whether the current window ends at the given tick.
func (c *Collector) WindowDone(tick int32) bool {
	return tick-c.windowStartTick >= c.windowDurationTicks
}

// EndWindow closes the current window, returning its stats and starting
// the next one. Population fields are filled in by the caller, which
// owns the world state.
func (c *Collector) EndWindow(tick int32) WindowStats {
	stats := WindowStats{
		WindowStart:   c.windowStartTick,
		WindowEnd:     tick,
		PelletsEaten:  c.pelletsEaten,
		BonusesEaten:  c.bonusesEaten,
		AgentsEaten:   c.agentsEaten,
		PlayersEaten:  c.playersEaten,
		Splits:        c.splits,
		Merges:        c.merges,
		AgentRespawns: c.agentRespawns,
		PlayerGains:   c.playerGains,
	}

	c.windowStartTick = tick
	c.pelletsEaten = 0
	c.bonusesEaten = 0
	c.agentsEaten = 0
	c.playersEaten = 0
	c.splits = 0
	c.merges = 0
	c.agentRespawns = 0
	c.playerGains = 0

	return stats
}
