package hint

import (
	"context"
	"fmt"

	"svw.info/untangle/internal/domain"
	"svw.info/untangle/internal/geometry"
)

// Busiest implements a minimal Hinter: it finds the rope tangled with the
// most others and suggests dragging whichever of its two pins sits further
// from the rest of the knot's center.
type Busiest struct{}

func NewBusiest() *Busiest { return &Busiest{} }

// Hint returns a suggestion for the next pin to drag, or ok=false when the
// level has no tangles left.
func (h *Busiest) Hint(ctx context.Context, l *domain.Level, positions map[string]geometry.Vec2, tangled map[string]bool) (domain.Hint, bool, error) {
	crossings := countCrossings(l, positions, tangled)
	var worst *domain.Edge
	worstCount := 0
	for i := range l.Edges {
		if c := crossings[l.Edges[i].ID]; c > worstCount {
			worst = &l.Edges[i]
			worstCount = c
		}
	}
	if worst == nil {
		return domain.Hint{}, false, nil
	}

	center := centroid(positions)
	pin := worst.P1
	if geometry.Dist(positions[worst.P2], center) > geometry.Dist(positions[worst.P1], center) {
		pin = worst.P2
	}
	return domain.Hint{
		Message: fmt.Sprintf("Rope %s crosses %d others - try dragging pin %s", worst.ID, worstCount, pin),
		PointID: pin,
		EdgeID:  worst.ID,
	}, true, nil
}

// countCrossings re-derives per-edge crossing counts from the positions,
// skipping adjacent pairs exactly like the evaluation does.
func countCrossings(l *domain.Level, positions map[string]geometry.Vec2, tangled map[string]bool) map[string]int {
	out := make(map[string]int, len(l.Edges))
	for i := 0; i < len(l.Edges); i++ {
		e1 := l.Edges[i]
		if !tangled[e1.ID] {
			continue
		}
		for j := i + 1; j < len(l.Edges); j++ {
			e2 := l.Edges[j]
			if !tangled[e2.ID] || sharesEndpoint(e1, e2) {
				continue
			}
			if geometry.SegmentsCross(positions[e1.P1], positions[e1.P2], positions[e2.P1], positions[e2.P2]) {
				out[e1.ID]++
				out[e2.ID]++
			}
		}
	}
	return out
}

func centroid(positions map[string]geometry.Vec2) geometry.Vec2 {
	if len(positions) == 0 {
		return geometry.Vec2{}
	}
	var c geometry.Vec2
	for _, p := range positions {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= float64(len(positions))
	c.Y /= float64(len(positions))
	return c
}

func sharesEndpoint(a, b domain.Edge) bool {
	return a.P1 == b.P1 || a.P1 == b.P2 || a.P2 == b.P1 || a.P2 == b.P2
}
