package game

import (
	"github.com/softbody-labs/petri/components"
)

// maybeFlushStats closes the stats window when due, fills in the
// population snapshot, and writes the row.
func (g *Game) maybeFlushStats() {
	if !g.collector.WindowDone(g.tick) {
		return
	}

	stats := g.collector.EndWindow(g.tick)

	var masses []float64
	var playerMass float64

	query := g.bodyFilter.Query()
	for query.Next() {
		_, _, _, body, id, _ := query.Get()
		masses = append(masses, float64(body.Mass))
		if id.Role == components.RolePlayer {
			stats.PlayerBodies++
			playerMass += float64(body.Mass)
		} else {
			stats.AgentBodies++
		}
	}

	stats.PlayerMass = playerMass
	stats.FillMassDistribution(masses)

	if err := g.output.WriteTelemetry(stats); err != nil {
		Logf("telemetry write failed: %v", err)
	}
	if g.statsHook != nil {
		g.statsHook(stats)
	}

	if g.logStats {
		g.logWorldState()
	}
}
