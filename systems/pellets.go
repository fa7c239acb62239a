package systems

import (
	"math/rand"

	"github.com/softbody-labs/petri/config"
)

// Pellet is a small inert collectible. It carries no mass field; a
// consumer gains radius^2 * pellet_yield.
type Pellet struct {
	X, Y   float32
	Radius float32
}

// PelletField owns the pellet population. Pellets live outside the ECS:
// they never move or interact with each other, so a flat slice plus a
// lookup grid beats entity bookkeeping (same reasoning as keeping
// static scenery out of the archetype storage).
type PelletField struct {
	pellets []Pellet
	grid    *Grid
	bounds  Bounds
	rng     *rand.Rand

	radiusMin float32
	radiusMax float32
	yield     float32

	scratch []int32
}

// NewPelletField creates a field with count pellets at random positions.
func NewPelletField(bounds Bounds, count int, rng *rand.Rand, cfg *config.Config) *PelletField {
	f := &PelletField{
		pellets:   make([]Pellet, 0, count),
		grid:      NewGrid(bounds.Width, bounds.Height, 100),
		bounds:    bounds,
		rng:       rng,
		radiusMin: float32(cfg.Entity.PelletRadiusMin),
		radiusMax: float32(cfg.Entity.PelletRadiusMax),
		yield:     float32(cfg.Consumption.PelletYield),
	}
	for i := 0; i < count; i++ {
		f.pellets = append(f.pellets, f.randomPellet())
	}
	f.Rebuild()
	return f
}

// Rebuild refreshes the lookup grid. Call once per tick before the
// consumption pass; respawns within a tick reuse consumed slots, so the
// grid only goes stale by at most one tick for the replacements.
func (f *PelletField) Rebuild() {
	f.grid.Clear()
	for i := range f.pellets {
		f.grid.Insert(int32(i), f.pellets[i].X, f.pellets[i].Y)
	}
}

// ConsumeOverlapping removes every pellet overlapping the given circle,
// immediately respawning a replacement elsewhere, and returns the total
// mass gained plus the number of pellets eaten.
func (f *PelletField) ConsumeOverlapping(x, y, radius float32) (gain float32, eaten int) {
	f.scratch = f.grid.QueryCircleInto(f.scratch[:0], x, y, radius+f.radiusMax)

	for _, idx := range f.scratch {
		p := &f.pellets[idx]
		if distance(x, y, p.X, p.Y) >= radius+p.Radius {
			continue
		}

		gain += p.Radius * p.Radius * f.yield
		eaten++

		// Replacement spawn takes over the slot; the stale grid entry
		// is harmless since the new pellet is almost surely elsewhere
		// and gets indexed on the next Rebuild.
		*p = f.randomPellet()
	}

	return gain, eaten
}

// Count returns the number of live pellets (constant by construction).
func (f *PelletField) Count() int {
	return len(f.pellets)
}

// Pellets returns the pellet slice for read-only rendering access.
func (f *PelletField) Pellets() []Pellet {
	return f.pellets
}

func (f *PelletField) randomPellet() Pellet {
	return Pellet{
		X:      f.rng.Float32() * f.bounds.Width,
		Y:      f.rng.Float32() * f.bounds.Height,
		Radius: randRange(f.rng, f.radiusMin, f.radiusMax),
	}
}
