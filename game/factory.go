package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/softbody-labs/petri/components"
	"github.com/softbody-labs/petri/systems"
)

// spawnInitialPopulation creates the starting entities: one body per
// player group, the agent population (the first few as bosses), plus
// the pellet and bonus fields already built by NewGameWithOptions.
func (g *Game) spawnInitialPopulation() {
	cfg := g.cfg

	for group := 0; group < cfg.Population.PlayerGroups; group++ {
		g.spawnPlayer(uint8(group))
	}

	for i := 0; i < cfg.Population.Agents; i++ {
		role := components.RoleAgent
		if i < cfg.Population.Bosses {
			role = components.RoleBoss
		}
		g.spawnAgent(role)
	}
}

// spawnPlayer creates a fresh player body for a group near the arena
// center and points the group target at it so the body idles in place.
func (g *Game) spawnPlayer(group uint8) ecs.Entity {
	cfg := g.cfg

	x := g.bounds.Width/2 + (g.rng.Float32()-0.5)*g.bounds.Width/4
	y := g.bounds.Height/2 + (g.rng.Float32()-0.5)*g.bounds.Height/4
	g.SetTarget(group, x, y)

	return g.spawnBody(
		x, y,
		float32(cfg.Entity.PlayerStartMass),
		components.Identity{Role: components.RolePlayer, Group: group},
		components.Impulse{},
		0,
	)
}

// spawnAgent creates an autonomous body at a random position with a
// role-dependent starting mass. The spawn policy calls this whenever an
// agent is consumed, so the agent population stays constant.
func (g *Game) spawnAgent(role components.Role) ecs.Entity {
	cfg := g.cfg

	mass := float32(cfg.Entity.BossMass)
	if role == components.RoleAgent {
		mass = float32(cfg.Entity.AgentMassMin) +
			g.rng.Float32()*float32(cfg.Entity.AgentMassMax-cfg.Entity.AgentMassMin)
	}

	return g.spawnBody(
		g.rng.Float32()*g.bounds.Width,
		g.rng.Float32()*g.bounds.Height,
		mass,
		components.Identity{Role: role},
		components.Impulse{},
		0,
	)
}

// spawnChild materializes the new body produced by a split.
func (g *Game) spawnChild(spec systems.ChildSpec) ecs.Entity {
	return g.spawnBody(
		spec.X, spec.Y,
		spec.Mass,
		spec.ID,
		components.Impulse{X: spec.ImpX, Y: spec.ImpY},
		spec.LastSplit,
	)
}

// spawnBody creates one body entity.
func (g *Game) spawnBody(x, y, mass float32, id components.Identity, imp components.Impulse, lastSplitMs int64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	body := components.NewBody(mass)
	clock := components.SplitClock{LastSplitMs: lastSplitMs}

	return g.bodyMapper.NewEntity(&pos, &vel, &imp, &body, &id, &clock)
}

// Restart respawns eliminated player groups and clears their terminal
// state. Everything else in the arena keeps running.
func (g *Game) Restart() {
	for group, dead := range g.deadGroups {
		if !dead {
			continue
		}
		g.spawnPlayer(group)
		g.deadGroups[group] = false
	}
	g.refreshPopulation()
}
