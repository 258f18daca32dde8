package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"svw.info/untangle/internal/domain"
	"svw.info/untangle/internal/geometry"
	"svw.info/untangle/internal/ports"
)

// jitterMag keeps the final offsets well under the pin radius so jitter
// can never create coincidental overlaps.
const jitterMag = 0.12

var palette = []string{
	"#e74c3c", "#3498db", "#2ecc71", "#f1c40f",
	"#9b59b6", "#e67e22", "#1abc9c", "#fd79a8",
}

// Generate creates a solvable level for the given difficulty index. The
// level is planar in its ring layout by construction; scrambling permutes
// positions only, so the solved arrangement always remains reachable.
func (g *RingGenerator) Generate(ctx context.Context, seed int64, level int) (*domain.Level, ports.Stats, error) {
	start := time.Now()
	if level < 1 {
		return nil, ports.Stats{}, fmt.Errorf("%w: got %d", domain.ErrInvalidLevelIndex, level)
	}
	rng := rand.New(rand.NewSource(seed))

	n := NodeCount(level)
	points := make([]domain.Point, 0, n)
	for i := 0; i < n; i++ {
		pos := RingPosition(i, n)
		points = append(points, domain.Point{
			ID:    fmt.Sprintf("p%d", i),
			X:     pos.X,
			Y:     pos.Y,
			Z:     float64(i%4) * 0.02, // cosmetic rope layering
			Color: palette[i%len(palette)],
		})
	}

	// Mandatory ring edges: connected, every pin degree >= 2, crossing-free
	// on the circle.
	edges := make([]domain.Edge, 0, n)
	seen := make(map[[2]int]bool, n)
	addEdge := func(a, b int) {
		edges = append(edges, domain.Edge{
			ID: fmt.Sprintf("e%d", len(edges)),
			P1: points[a].ID,
			P2: points[b].ID,
		})
		seen[pairKey(a, b)] = true
	}
	for i := 0; i < n; i++ {
		addEdge(i, (i+1)%n)
	}

	// Short chords up to the density target. Each candidate is verified
	// against every accepted edge in the ring layout, so the pre-scramble
	// state stays planar by check, not by hope.
	extra := int(float64(n)*EdgeDensity(level)) - n
	maxOff := n / 3
	if maxOff < 2 {
		maxOff = 2
	}
	rejected := 0
	accepted := make([]idxEdge, 0, len(edges)+extra)
	for i := 0; i < n; i++ {
		accepted = append(accepted, idxEdge{i, (i + 1) % n})
	}
	for added, attempts := 0, 0; added < extra && attempts < 8*extra+8; attempts++ {
		if ctx.Err() != nil {
			return nil, ports.Stats{Rejected: rejected, Duration: time.Since(start)}, ctx.Err()
		}
		a := rng.Intn(n)
		b := (a + 2 + rng.Intn(maxOff-1)) % n
		if seen[pairKey(a, b)] {
			rejected++
			continue
		}
		if crossesAny(a, b, n, accepted) {
			rejected++
			continue
		}
		addEdge(a, b)
		accepted = append(accepted, idxEdge{a, b})
		added++
	}

	// Scramble: pairwise (x, y) swaps keep the layout a permutation of the
	// solved one, which is the solvability witness.
	for s := 0; s < ScrambleCount(level); s++ {
		i, j := rng.Intn(n), rng.Intn(n)
		points[i].X, points[j].X = points[j].X, points[i].X
		points[i].Y, points[j].Y = points[j].Y, points[i].Y
	}

	// Jitter so the start state is not suspiciously grid-aligned.
	for i := range points {
		points[i].X += (rng.Float64()*2 - 1) * jitterMag
		points[i].Y += (rng.Float64()*2 - 1) * jitterMag
	}

	return &domain.Level{
		Index:     level,
		Seed:      seed,
		Points:    points,
		Edges:     edges,
		CreatedAt: time.Now().UnixNano(),
	}, ports.Stats{Rejected: rejected, Duration: time.Since(start)}, nil
}

// idxEdge is an edge in ring-index space, used only while generating.
type idxEdge struct{ a, b int }

// crossesAny tests a chord candidate against the accepted edges using the
// exact crossing predicate in the ring layout. Edges sharing an endpoint
// are skipped, matching the evaluation rule.
func crossesAny(a, b, n int, accepted []idxEdge) bool {
	ca, cb := RingPosition(a, n), RingPosition(b, n)
	for _, e := range accepted {
		if e.a == a || e.a == b || e.b == a || e.b == b {
			continue
		}
		if geometry.SegmentsCross(ca, cb, RingPosition(e.a, n), RingPosition(e.b, n)) {
			return true
		}
	}
	return false
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
