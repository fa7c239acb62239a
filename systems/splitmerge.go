package systems

import (
	"github.com/softbody-labs/petri/components"
	"github.com/softbody-labs/petri/config"
)

// ChildSpec describes the new body produced by a split. The caller
// spawns it; the parent is mutated in place by Split.
type ChildSpec struct {
	X, Y       float32
	Mass       float32
	ImpX, ImpY float32
	ID         components.Identity
	LastSplit  int64
}

// SplitMergeSystem enforces the cooldown-gated split and merge rules.
// Per body the state machine is Whole -> JustSplit (cooldown running)
// -> Mergeable -> Whole again with a fresh identity after a merge.
type SplitMergeSystem struct {
	minMass    float32
	maxBodies  int
	impulse    float32
	cooldownMs int64
}

// NewSplitMergeSystem creates a controller with parameters from config.
func NewSplitMergeSystem(cfg *config.Config) *SplitMergeSystem {
	return &SplitMergeSystem{
		minMass:    float32(cfg.Split.MinMass),
		maxBodies:  cfg.Split.MaxPlayerBodies,
		impulse:    float32(cfg.Split.Impulse),
		cooldownMs: cfg.Split.MergeCooldownMs,
	}
}

// CooldownMs returns the merge/split cooldown in milliseconds.
func (s *SplitMergeSystem) CooldownMs() int64 {
	return s.cooldownMs
}

// CanSplit reports whether a body's mass allows splitting. Bodies below
// the minimum viable mass never split, preventing infinite
// fragmentation.
func (s *SplitMergeSystem) CanSplit(body *components.Body) bool {
	return body.Mass >= s.minMass
}

// AtBodyCap reports whether a player group is at the manual-split cap.
func (s *SplitMergeSystem) AtBodyCap(groupBodies int) bool {
	return groupBodies >= s.maxBodies
}

// Split halves the parent in place and returns the child spec. dirX,
// dirY is the parent's heading (toward its target for players, along
// the steering angle for agents); the child is launched by a full
// impulse along it and the parent receives the opposite half-magnitude
// impulse. Both halves are stamped with nowMs. Mass is conserved
// exactly: child mass + remaining parent mass equals the pre-split
// parent mass.
//
// Returns ok=false without state change when the parent is below the
// minimum viable mass.
func (s *SplitMergeSystem) Split(pos *components.Position, imp *components.Impulse, body *components.Body, clock *components.SplitClock, id components.Identity, dirX, dirY float32, nowMs int64) (ChildSpec, bool) {
	if !s.CanSplit(body) {
		return ChildSpec{}, false
	}

	dirX, dirY = normalize(dirX, dirY)
	if dirX == 0 && dirY == 0 {
		dirX = 1
	}

	half := body.Mass / 2
	body.SetMass(body.Mass - half)
	clock.LastSplitMs = nowMs

	imp.X -= dirX * s.impulse / 2
	imp.Y -= dirY * s.impulse / 2

	return ChildSpec{
		X:         pos.X,
		Y:         pos.Y,
		Mass:      half,
		ImpX:      dirX * s.impulse,
		ImpY:      dirY * s.impulse,
		ID:        id,
		LastSplit: nowMs,
	}, true
}

// MergePass merges eligible player bodies, checked once per tick after
// collision resolution. Two bodies merge iff they share an owner group,
// their circles overlap, and both have strictly exceeded the cooldown
// since their last split or merge. The survivor takes the mass-weighted
// average position and the summed mass, and its clock resets to nowMs
// so it cannot immediately re-merge or re-split. Returns the number of
// merges performed; absorbed bodies are marked removed.
func (s *SplitMergeSystem) MergePass(views []BodyView, nowMs int64) int {
	merges := 0

	for i := range views {
		a := &views[i]
		if a.Removed || a.ID.Role != components.RolePlayer {
			continue
		}
		if !a.Clock.Elapsed(nowMs, s.cooldownMs) {
			continue
		}

		for j := i + 1; j < len(views); j++ {
			b := &views[j]
			if b.Removed || b.ID.Role != components.RolePlayer || b.ID.Group != a.ID.Group {
				continue
			}
			if !b.Clock.Elapsed(nowMs, s.cooldownMs) {
				continue
			}
			if !a.Overlaps(b) {
				continue
			}

			total := a.Body.Mass + b.Body.Mass
			a.Pos.X = (a.Pos.X*a.Body.Mass + b.Pos.X*b.Body.Mass) / total
			a.Pos.Y = (a.Pos.Y*a.Body.Mass + b.Pos.Y*b.Body.Mass) / total
			a.Body.SetMass(total)
			a.Clock.LastSplitMs = nowMs

			b.Removed = true
			merges++

			// Survivor's clock was just reset, so it is out of the
			// merge pool for the rest of this tick.
			break
		}
	}

	return merges
}
