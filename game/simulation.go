package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/softbody-labs/petri/components"
	"github.com/softbody-labs/petri/systems"
)

// Step advances the simulation by one tick. nowMs is the injected
// monotonic clock reading used for all cooldown checks; the simulation
// never reads a clock itself. A step always runs to completion:
// movement, steering (with agent splits), manual splits, consumption,
// merging, removal bookkeeping, and telemetry.
func (g *Game) Step(nowMs int64) {
	g.nowMs = nowMs

	// 1. Advance positions, decay impulses, ease display radii.
	g.movement.Update(g.targets)

	// 2. Rotate bonus structures, age bursts, refresh the pellet grid.
	g.bonuses.Update()
	g.pellets.Rebuild()

	// 3. Agent steering; may trigger AI splits.
	g.updateSteering(nowMs)

	// 4. Manual player splits requested by the input collaborator.
	g.applySplitRequests(nowMs)

	// 5. Collision and consumption resolution.
	g.collectViews()
	report := g.consumer.Resolve(g.views, g.pellets, g.bonuses)

	// 6. Merge eligible player bodies.
	merges := g.splitter.MergePass(g.views, nowMs)

	// 7. Despawn consumed/absorbed bodies, replenish agents.
	g.applyRemovals()
	g.refreshPopulation()

	// 8. Telemetry.
	g.collector.RecordPelletsEaten(report.PelletsEaten)
	g.collector.RecordBonusesEaten(report.BonusesEaten)
	g.collector.RecordAgentsEaten(report.AgentsEaten)
	g.collector.RecordPlayersEaten(report.PlayersEaten)
	g.collector.RecordPlayerGain(float64(report.PlayerGains))
	g.collector.RecordMerges(merges)

	g.tick++
	g.maybeFlushStats()
}

// collectViews rebuilds the per-tick body view set. Component pointers
// stay valid until the next structural change, so every caller that
// spawns or despawns entities must do it outside view iteration and
// recollect afterwards.
func (g *Game) collectViews() {
	g.views = g.views[:0]

	query := g.bodyFilter.Query()
	for query.Next() {
		pos, vel, imp, body, id, clock := query.Get()
		g.views = append(g.views, systems.BodyView{
			Entity: query.Entity(),
			Pos:    pos,
			Vel:    vel,
			Imp:    imp,
			Body:   body,
			ID:     *id,
			Clock:  clock,
		})
	}
}

// updateSteering recomputes every agent's steering velocity and applies
// at most one AI split per agent per tick.
func (g *Game) updateSteering(nowMs int64) {
	g.collectViews()

	var children []systems.ChildSpec

	for i := range g.views {
		bot := &g.views[i]
		if !bot.ID.Role.IsAgent() {
			continue
		}

		splitReady := bot.Clock.Elapsed(nowMs, g.splitter.CooldownMs()) && g.splitter.CanSplit(bot.Body)

		var decision systems.Decision
		decision, g.opps = g.steering.DecideView(bot, g.views, splitReady, g.opps)

		if decision.HasVelocity {
			bot.Vel.X = decision.VX
			bot.Vel.Y = decision.VY
		}

		if decision.Split {
			child, ok := g.splitter.Split(bot.Pos, bot.Imp, bot.Body, bot.Clock, bot.ID, decision.DirX, decision.DirY, nowMs)
			if ok {
				children = append(children, child)
				g.collector.RecordSplit()
			}
		}
	}

	// Spawning is a structural change; the views collected above are
	// discarded afterwards.
	for _, child := range children {
		g.spawnChild(child)
	}
}

// applySplitRequests performs the queued manual splits: every body of
// the requesting group splits toward the group target, until the
// per-group body cap is reached. Bodies below the minimum viable mass
// are silently skipped.
func (g *Game) applySplitRequests(nowMs int64) {
	for group, requested := range g.splitReqs {
		if !requested {
			continue
		}
		g.splitReqs[group] = false

		g.collectViews()
		target := g.targets[group]
		count := 0
		for i := range g.views {
			v := &g.views[i]
			if v.ID.Role == components.RolePlayer && v.ID.Group == group {
				count++
			}
		}

		var children []systems.ChildSpec
		for i := range g.views {
			v := &g.views[i]
			if v.ID.Role != components.RolePlayer || v.ID.Group != group {
				continue
			}
			if g.splitter.AtBodyCap(count + len(children)) {
				break
			}

			child, ok := g.splitter.Split(v.Pos, v.Imp, v.Body, v.Clock, v.ID, target.X-v.Pos.X, target.Y-v.Pos.Y, nowMs)
			if ok {
				children = append(children, child)
				g.collector.RecordSplit()
			}
		}

		for _, child := range children {
			g.spawnChild(child)
		}
	}
}

// applyRemovals despawns every body marked removed during resolution
// and merging, immediately replenishing consumed agents per the spawn
// policy. An emptied player group flips to the terminal game-over state.
func (g *Game) applyRemovals() {
	// Collect first: despawning mid-iteration would skew the view set.
	type removal struct {
		entity ecs.Entity
		id     components.Identity
	}
	var removed []removal

	for i := range g.views {
		v := &g.views[i]
		if v.Removed {
			removed = append(removed, removal{entity: v.Entity, id: v.ID})
		}
	}

	for _, r := range removed {
		g.bodyMapper.Remove(r.entity)
	}

	for _, r := range removed {
		if r.id.Role.IsAgent() {
			g.spawnAgent(r.id.Role)
			g.collector.RecordAgentRespawn()
		}
	}
}

// refreshPopulation recounts bodies by role and flags emptied player
// groups as game over.
func (g *Game) refreshPopulation() {
	for group := range g.playerBodies {
		g.playerBodies[group] = 0
	}
	g.agentBodies = 0

	query := g.bodyFilter.Query()
	for query.Next() {
		_, _, _, _, id, _ := query.Get()
		if id.Role.IsAgent() {
			g.agentBodies++
		} else {
			g.playerBodies[id.Group]++
		}
	}

	for group, count := range g.playerBodies {
		if count == 0 && !g.deadGroups[group] {
			g.deadGroups[group] = true
			Logf("group %d eliminated at tick %d", group, g.tick)
		}
	}
}
