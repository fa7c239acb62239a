package components

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's persistent steering velocity.
// Only agent bodies use it; player bodies move toward an external target.
type Velocity struct {
	X, Y float32
}

// Impulse is the transient velocity injected by a split.
// It decays geometrically each tick for every body.
type Impulse struct {
	X, Y float32
}
