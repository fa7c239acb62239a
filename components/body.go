package components

import "math"

// Body holds the mass and derived radii of a circular entity.
// Radius is always recomputed from mass; collision math never uses
// DisplayRadius, which lags behind for smooth growth animation.
type Body struct {
	Mass          float32
	Radius        float32
	DisplayRadius float32
}

// NewBody creates a body with the given mass and a settled display radius.
func NewBody(mass float32) Body {
	r := radiusFor(mass)
	return Body{Mass: mass, Radius: r, DisplayRadius: r}
}

// SetMass updates mass and recomputes the true radius.
func (b *Body) SetMass(mass float32) {
	b.Mass = mass
	b.Radius = radiusFor(mass)
}

// AddMass credits mass to the body and recomputes the true radius.
func (b *Body) AddMass(gain float32) {
	b.SetMass(b.Mass + gain)
}

// EaseDisplay moves the display radius toward the true radius.
func (b *Body) EaseDisplay(factor float32) {
	b.DisplayRadius += (b.Radius - b.DisplayRadius) * factor
}

// radiusFor returns the area-proportional radius for a mass.
func radiusFor(mass float32) float32 {
	if mass <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(mass)))
}
