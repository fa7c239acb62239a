package systems

import (
	"math"
	"math/rand"

	"github.com/softbody-labs/petri/config"
)

// Bonus is a rotating collectible structure. Its mass bonus is size^2;
// a consumer gains massBonus * bonus_yield.
type Bonus struct {
	X, Y  float32
	Size  float32
	Angle float32 // rotation, radians
	Spin  float32 // radians per tick
}

// MassBonus returns the structure's bonus payout base.
func (b *Bonus) MassBonus() float32 {
	return b.Size * b.Size
}

// Burst is the transient visual event emitted when a bonus structure is
// consumed. The renderer drains ages each frame; the simulation only
// appends.
type Burst struct {
	X, Y float32
	Size float32
	Age  int32 // ticks since emission
}

// BurstLifetime is the age in ticks at which a burst fades out.
const BurstLifetime = 30

// BonusField owns the bonus structure population, kept outside the ECS
// like the pellet field. The population is tiny, so overlap checks scan
// the slice directly.
type BonusField struct {
	bonuses []Bonus
	bursts  []Burst
	bounds  Bounds
	rng     *rand.Rand

	sizeMin float32
	sizeMax float32
	spinMax float32
	yield   float32
}

// NewBonusField creates a field with count structures at random positions.
func NewBonusField(bounds Bounds, count int, rng *rand.Rand, cfg *config.Config) *BonusField {
	f := &BonusField{
		bonuses: make([]Bonus, 0, count),
		bounds:  bounds,
		rng:     rng,
		sizeMin: float32(cfg.Entity.BonusSizeMin),
		sizeMax: float32(cfg.Entity.BonusSizeMax),
		spinMax: float32(cfg.Entity.BonusSpinMax),
		yield:   float32(cfg.Consumption.BonusYield),
	}
	for i := 0; i < count; i++ {
		f.bonuses = append(f.bonuses, f.randomBonus())
	}
	return f
}

// Update advances rotation and ages bursts by one tick.
func (f *BonusField) Update() {
	for i := range f.bonuses {
		b := &f.bonuses[i]
		b.Angle += b.Spin
		if b.Angle > 2*math.Pi {
			b.Angle -= 2 * math.Pi
		}
	}

	n := 0
	for _, burst := range f.bursts {
		burst.Age++
		if burst.Age < BurstLifetime {
			f.bursts[n] = burst
			n++
		}
	}
	f.bursts = f.bursts[:n]
}

// ConsumeOverlapping removes every structure overlapping the given
// circle, emitting a burst and respawning a replacement, and returns
// the total mass gained plus the number of structures consumed.
func (f *BonusField) ConsumeOverlapping(x, y, radius float32) (gain float32, eaten int) {
	for i := range f.bonuses {
		b := &f.bonuses[i]
		if distance(x, y, b.X, b.Y) >= radius+b.Size {
			continue
		}

		gain += b.MassBonus() * f.yield
		eaten++
		f.bursts = append(f.bursts, Burst{X: b.X, Y: b.Y, Size: b.Size})

		*b = f.randomBonus()
	}

	return gain, eaten
}

// Count returns the number of live structures (constant by construction).
func (f *BonusField) Count() int {
	return len(f.bonuses)
}

// Bonuses returns the structure slice for read-only rendering access.
func (f *BonusField) Bonuses() []Bonus {
	return f.bonuses
}

// Bursts returns the live burst events for read-only rendering access.
func (f *BonusField) Bursts() []Burst {
	return f.bursts
}

func (f *BonusField) randomBonus() Bonus {
	return Bonus{
		X:    f.rng.Float32() * f.bounds.Width,
		Y:    f.rng.Float32() * f.bounds.Height,
		Size: randRange(f.rng, f.sizeMin, f.sizeMax),
		Spin: randRange(f.rng, -f.spinMax, f.spinMax),
	}
}
