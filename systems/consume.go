package systems

import (
	"github.com/softbody-labs/petri/components"
	"github.com/softbody-labs/petri/config"
)

// ConsumptionReport summarizes one tick of the resolver for telemetry
// and the spawn policy.
type ConsumptionReport struct {
	PelletsEaten  int
	BonusesEaten  int
	AgentsEaten   int // agents and bosses consumed, triggers respawns
	PlayersEaten  int
	PlayerGains   float32 // mass credited to player bodies this tick
}

// ConsumptionSystem resolves all pairwise interactions each tick in a
// fixed category order: body-pellet, body-bonus, player-agent, then
// agent-agent. A body consumed in an early pass is marked removed and
// excluded from every later pass of the same tick.
type ConsumptionSystem struct {
	margin    float32
	bodyYield float32
}

// NewConsumptionSystem creates a resolver with parameters from config.
func NewConsumptionSystem(cfg *config.Config) *ConsumptionSystem {
	return &ConsumptionSystem{
		margin:    float32(cfg.Consumption.MassMargin),
		bodyYield: float32(cfg.Consumption.BodyYield),
	}
}

// Resolve runs the four passes over the live body views. Consumed
// bodies get Removed set; the caller despawns them afterwards and
// replenishes agents per the report.
func (s *ConsumptionSystem) Resolve(views []BodyView, pellets *PelletField, bonuses *BonusField) ConsumptionReport {
	var rep ConsumptionReport

	// Pass 1: body-pellet.
	for i := range views {
		v := &views[i]
		if v.Removed {
			continue
		}
		gain, eaten := pellets.ConsumeOverlapping(v.Pos.X, v.Pos.Y, v.Body.Radius)
		if eaten > 0 {
			v.Body.AddMass(gain)
			rep.PelletsEaten += eaten
			if v.ID.Role == components.RolePlayer {
				rep.PlayerGains += gain
			}
		}
	}

	// Pass 2: body-bonus.
	for i := range views {
		v := &views[i]
		if v.Removed {
			continue
		}
		gain, eaten := bonuses.ConsumeOverlapping(v.Pos.X, v.Pos.Y, v.Body.Radius)
		if eaten > 0 {
			v.Body.AddMass(gain)
			rep.BonusesEaten += eaten
			if v.ID.Role == components.RolePlayer {
				rep.PlayerGains += gain
			}
		}
	}

	// Pass 3: player-agent.
	for i := range views {
		a := &views[i]
		if a.Removed || a.ID.Role != components.RolePlayer {
			continue
		}
		for j := range views {
			b := &views[j]
			if b.Removed || !b.ID.Role.IsAgent() {
				continue
			}
			s.resolvePair(a, b, &rep)
			if a.Removed {
				break
			}
		}
	}

	// Pass 4: agent-agent.
	for i := range views {
		a := &views[i]
		if a.Removed || !a.ID.Role.IsAgent() {
			continue
		}
		for j := i + 1; j < len(views); j++ {
			b := &views[j]
			if b.Removed || !b.ID.Role.IsAgent() {
				continue
			}
			s.resolvePair(a, b, &rep)
			if a.Removed {
				break
			}
		}
	}

	return rep
}

// resolvePair applies the consumption rule to one overlapping pair.
// The larger body must exceed the smaller by the mass margin to consume
// it; a near-equal overlap is a no-op, not a bounce. The winner gains
// the configured fraction of the loser's mass; the rest is discarded by
// design.
func (s *ConsumptionSystem) resolvePair(a, b *BodyView, rep *ConsumptionReport) {
	d := distance(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y)
	if d == 0 {
		// Identical centers: skip, no direction to resolve along.
		return
	}
	if d >= a.Body.Radius+b.Body.Radius {
		return
	}

	var winner, loser *BodyView
	switch {
	case a.Body.Mass > b.Body.Mass*s.margin:
		winner, loser = a, b
	case b.Body.Mass > a.Body.Mass*s.margin:
		winner, loser = b, a
	default:
		return
	}

	winner.Body.AddMass(loser.Body.Mass * s.bodyYield)
	loser.Removed = true

	switch loser.ID.Role {
	case components.RolePlayer:
		rep.PlayersEaten++
	default:
		rep.AgentsEaten++
	}
	if winner.ID.Role == components.RolePlayer {
		rep.PlayerGains += loser.Body.Mass * s.bodyYield
	}
}
