package generator

import (
	"math"

	"svw.info/untangle/internal/geometry"
)

// RingRadius is the radius of the solved reference circle all levels are
// laid out on before scrambling.
const RingRadius = 4.0

// RingGenerator builds levels by seeding a crossing-free ring layout,
// adding verified non-crossing chords, then scrambling pin positions.
type RingGenerator struct{}

// NewRingGenerator returns a generator with the default tuning.
func NewRingGenerator() *RingGenerator { return &RingGenerator{} }

// RingPosition returns the solved-layout position of point i of n on the
// reference circle. Undoing a level's scramble lands every pin here.
func RingPosition(i, n int) geometry.Vec2 {
	ang := 2 * math.Pi * float64(i) / float64(n)
	return geometry.Vec2{X: RingRadius * math.Cos(ang), Y: RingRadius * math.Sin(ang)}
}

// NodeCount is the difficulty curve for pins: 5 at level 1, one more every
// ten levels, saturating at 15.
func NodeCount(level int) int {
	n := 5 + level/10
	if n > 15 {
		n = 15
	}
	return n
}

// EdgeDensity is the target ropes-per-pin ratio, rising from 1.2 toward a
// cap of 2.0 as levels climb.
func EdgeDensity(level int) float64 {
	d := 1.2 + float64(level)/100*0.8
	if d > 2.0 {
		d = 2.0
	}
	return d
}

// ScrambleCount is how many pairwise position swaps a level receives.
func ScrambleCount(level int) int { return 20 + 2*level }
