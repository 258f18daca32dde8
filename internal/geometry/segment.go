// Package geometry holds the 2D segment math the tangle evaluation is
// built on. It is UI-agnostic and has no dependencies on the rest of the
// engine so it stays trivially testable.
package geometry

import "math"

// Vec2 is a 2D position. Pin depth (z) never enters crossing math.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

const (
	// epsDet guards the determinant: below this the segment carriers are
	// treated as parallel and the pair reports no crossing. Collinear
	// overlapping segments are deliberately treated as clear — the puzzle
	// never needs that case resolved exactly.
	epsDet = 0.001

	// epsParam shrinks the open interval of valid line parameters so that
	// ropes grazing near a shared region of a third pin are not flagged.
	epsParam = 0.05
)

// SegmentsCross reports whether segment a-b crosses segment c-d in the
// open interior of both. Endpoint touches and near-endpoint grazes are
// not crossings.
//
// The test solves the 2x2 system for the parameters lambda (along a-b)
// and gamma (along c-d) at the intersection of the two carrier lines:
//
//	a + lambda*(b-a) = c + gamma*(d-c)
func SegmentsCross(a, b, c, d Vec2) bool {
	abx, aby := b.X-a.X, b.Y-a.Y
	cdx, cdy := d.X-c.X, d.Y-c.Y

	det := abx*cdy - aby*cdx
	if math.Abs(det) < epsDet {
		return false
	}

	acx, acy := c.X-a.X, c.Y-a.Y
	lambda := (acx*cdy - acy*cdx) / det
	gamma := (acx*aby - acy*abx) / det

	return lambda > epsParam && lambda < 1-epsParam &&
		gamma > epsParam && gamma < 1-epsParam
}

// Dist returns the Euclidean distance between two positions.
func Dist(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
