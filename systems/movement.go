package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/softbody-labs/petri/components"
	"github.com/softbody-labs/petri/config"
)

// Target is the externally supplied point a player group's bodies seek.
type Target struct {
	X, Y float32
}

// MovementSystem advances body positions each tick. Player bodies seek
// their group target and are clamped to the arena; agent bodies move by
// steering velocity plus split impulse and bounce off the edges.
type MovementSystem struct {
	filter ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Impulse,
		components.Body,
		components.Identity,
	]
	bounds Bounds

	speedMax     float32
	speedMin     float32
	speedFalloff float32
	impulseDecay float32
	displayEase  float32
}

// Bounds is the arena extent. Position (0,0) is the top-left corner.
type Bounds struct {
	Width, Height float32
}

// NewMovementSystem creates a movement system for the given arena bounds.
func NewMovementSystem(w *ecs.World, bounds Bounds, cfg *config.Config) *MovementSystem {
	return &MovementSystem{
		filter: *ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Impulse,
			components.Body,
			components.Identity,
		](w),
		bounds:       bounds,
		speedMax:     float32(cfg.Movement.PlayerSpeedMax),
		speedMin:     float32(cfg.Movement.PlayerSpeedMin),
		speedFalloff: float32(cfg.Movement.PlayerSpeedFalloff),
		impulseDecay: float32(cfg.Split.ImpulseDecay),
		displayEase:  float32(cfg.Movement.DisplayEase),
	}
}

// Update advances all bodies by one tick. targets maps a player group
// to the point its bodies seek this tick.
func (s *MovementSystem) Update(targets map[uint8]Target) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, imp, body, id := query.Get()

		if id.Role.IsAgent() {
			s.moveAgent(pos, vel, imp)
		} else {
			s.movePlayer(pos, imp, body, targets[id.Group])
		}

		// Split impulses decay geometrically for every body.
		imp.X *= s.impulseDecay
		imp.Y *= s.impulseDecay

		body.EaseDisplay(s.displayEase)
	}
}

// movePlayer seeks the target, decelerating as the body grows, and
// clamps the result to the arena.
func (s *MovementSystem) movePlayer(pos *components.Position, imp *components.Impulse, body *components.Body, t Target) {
	dx := t.X - pos.X
	dy := t.Y - pos.Y
	d := length(dx, dy)

	speed := clampFloat(s.speedMax-body.Radius/s.speedFalloff, s.speedMin, s.speedMax)
	if d <= speed {
		// Close enough to land on the target this tick.
		pos.X = t.X
		pos.Y = t.Y
	} else if d > 0 {
		pos.X += dx / d * speed
		pos.Y += dy / d * speed
	}

	pos.X += imp.X
	pos.Y += imp.Y

	pos.X = clampFloat(pos.X, 0, s.bounds.Width)
	pos.Y = clampFloat(pos.Y, 0, s.bounds.Height)
}

// moveAgent applies steering velocity plus impulse and bounces off the
// arena edges by negating the relevant velocity component.
func (s *MovementSystem) moveAgent(pos *components.Position, vel *components.Velocity, imp *components.Impulse) {
	pos.X += vel.X + imp.X
	pos.Y += vel.Y + imp.Y

	if pos.X < 0 {
		pos.X = 0
		vel.X = -vel.X
	} else if pos.X > s.bounds.Width {
		pos.X = s.bounds.Width
		vel.X = -vel.X
	}

	if pos.Y < 0 {
		pos.Y = 0
		vel.Y = -vel.Y
	} else if pos.Y > s.bounds.Height {
		pos.Y = s.bounds.Height
		vel.Y = -vel.Y
	}
}
