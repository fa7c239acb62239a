package systems

import (
	"math"
	"math/rand"
)

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float32) float32 {
	return float32(math.Sqrt(float64(distanceSq(x1, y1, x2, y2))))
}

// length returns the magnitude of a vector.
func length(x, y float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y)))
}

// normalize returns the unit vector for (x, y), or (0, 0) for the zero vector.
func normalize(x, y float32) (float32, float32) {
	l := length(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// randRange returns a uniform random float32 in [lo, hi).
func randRange(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}
