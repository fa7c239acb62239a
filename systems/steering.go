package systems

import (
	"math/rand"

	"github.com/softbody-labs/petri/components"
	"github.com/softbody-labs/petri/config"
)

// Opponent is one candidate body in an agent's steering scan, with the
// delta and distance precomputed from the agent's position.
type Opponent struct {
	DX, DY float32
	Dist   float32
	Mass   float32
}

// Decision is the outcome of one agent's steering scan.
type Decision struct {
	// HasVelocity is set when at least one flee or chase contribution
	// accumulated; VX, VY is then the new persistent velocity. With no
	// stimulus the agent keeps its prior heading.
	HasVelocity bool
	VX, VY      float32

	// Split is set when a prey within split range triggered a
	// full-force split. DirX, DirY is the split heading.
	Split      bool
	DirX, DirY float32
}

// SteeringSystem computes the reactive potential-field steering for
// autonomous agents: heavier overlords within danger range repel,
// lighter prey within prey range attract, and small prey close by
// trigger a split. Cheap per opponent, no path planning.
type SteeringSystem struct {
	dangerRange    float32
	preyRange      float32
	bossPreyRange  float32
	splitRange     float32
	fleeRatio      float32
	chaseRatio     float32
	splitRatio     float32
	bossSplitRatio float32
	speedMin       float32
	speedMax       float32

	rng *rand.Rand
}

// NewSteeringSystem creates a steering system with parameters from config.
func NewSteeringSystem(rng *rand.Rand, cfg *config.Config) *SteeringSystem {
	return &SteeringSystem{
		dangerRange:    float32(cfg.AI.DangerRange),
		preyRange:      float32(cfg.AI.PreyRange),
		bossPreyRange:  float32(cfg.AI.BossPreyRange),
		splitRange:     float32(cfg.AI.SplitRange),
		fleeRatio:      float32(cfg.AI.FleeRatio),
		chaseRatio:     float32(cfg.AI.ChaseRatio),
		splitRatio:     1.0 / 3.0,
		bossSplitRatio: float32(cfg.AI.BossSplitRatio),
		speedMin:       float32(cfg.AI.SpeedMin),
		speedMax:       float32(cfg.AI.SpeedMax),

		rng: rng,
	}
}

// PreyRange returns the prey sensing range for a role.
func (s *SteeringSystem) PreyRange(role components.Role) float32 {
	if role == components.RoleBoss {
		return s.bossPreyRange
	}
	return s.preyRange
}

// splitThreshold returns the prey-to-bot mass ratio below which a split
// is worthwhile for a role.
func (s *SteeringSystem) splitThreshold(role components.Role) float32 {
	if role == components.RoleBoss {
		return s.bossSplitRatio
	}
	return s.splitRatio
}

// Decide runs one agent's scan over all opponents. velX, velY is the
// agent's current heading, used as the split direction. splitReady
// reports whether the split/merge cooldown has elapsed; a triggered
// split ends the scan, so at most one fires per agent per tick.
func (s *SteeringSystem) Decide(bot *components.Body, role components.Role, velX, velY float32, splitReady bool, opps []Opponent) Decision {
	var d Decision
	var accX, accY float32
	contributions := 0

	preyRange := s.PreyRange(role)
	splitThreshold := s.splitThreshold(role)

	for i := range opps {
		op := &opps[i]
		if op.Dist <= 0 {
			// Identical centers carry no direction.
			continue
		}

		if op.Mass > bot.Mass*s.fleeRatio && op.Dist < s.dangerRange {
			accX -= op.DX / op.Dist
			accY -= op.DY / op.Dist
			contributions++
		}

		if op.Mass < bot.Mass*s.chaseRatio && op.Dist < preyRange {
			accX += op.DX / op.Dist
			accY += op.DY / op.Dist
			contributions++

			if splitReady && op.Mass < bot.Mass*splitThreshold && op.Dist < s.splitRange {
				d.Split = true
				d.DirX, d.DirY = normalize(velX, velY)
				if d.DirX == 0 && d.DirY == 0 {
					// Stationary agent: lunge straight at the prey.
					d.DirX = op.DX / op.Dist
					d.DirY = op.DY / op.Dist
				}
				break
			}
		}
	}

	if contributions > 0 {
		nx, ny := normalize(accX/float32(contributions), accY/float32(contributions))
		if nx != 0 || ny != 0 {
			speed := randRange(s.rng, s.speedMin, s.speedMax)
			d.HasVelocity = true
			d.VX = nx * speed
			d.VY = ny * speed
		}
	}

	return d
}

// DecideView runs Decide for an agent view against all other live views.
func (s *SteeringSystem) DecideView(bot *BodyView, views []BodyView, splitReady bool, scratch []Opponent) (Decision, []Opponent) {
	scratch = scratch[:0]
	for i := range views {
		op := &views[i]
		if op.Entity == bot.Entity || op.Removed {
			continue
		}
		dx := op.Pos.X - bot.Pos.X
		dy := op.Pos.Y - bot.Pos.Y
		scratch = append(scratch, Opponent{
			DX:   dx,
			DY:   dy,
			Dist: length(dx, dy),
			Mass: op.Body.Mass,
		})
	}
	return s.Decide(bot.Body, bot.ID.Role, bot.Vel.X, bot.Vel.Y, splitReady, scratch), scratch
}
