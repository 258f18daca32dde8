// Package engine evaluates tangles for one level instance. It owns the
// authoritative pin positions; renderers look positions up by id and never
// become a second source of truth for the geometry.
package engine

import (
	"svw.info/untangle/internal/domain"
	"svw.info/untangle/internal/geometry"
)

// Result is one evaluation: a tangled flag per edge id and the overall
// solved state. Solved requires at least one edge and zero tangles.
type Result struct {
	Tangled map[string]bool `json:"tangled"`
	Solved  bool            `json:"solved"`
}

// Engine holds the mutable state of a running level. It is single-threaded
// by contract: hosts that take moves from multiple goroutines serialize
// access themselves (the usecase session registry does exactly that).
type Engine struct {
	edges     []domain.Edge
	positions map[string]geometry.Vec2
	phase     domain.Phase
	dirty     bool
	last      Result
}

// New builds an engine from a level's points and edges. Positions are
// copied out of the level; the caller's LevelData is not retained.
func New(l *domain.Level) *Engine {
	pos := make(map[string]geometry.Vec2, len(l.Points))
	for _, p := range l.Points {
		pos[p.ID] = geometry.Vec2{X: p.X, Y: p.Y}
	}
	edges := make([]domain.Edge, len(l.Edges))
	copy(edges, l.Edges)
	return &Engine{
		edges:     edges,
		positions: pos,
		phase:     domain.PhaseInitializing,
		dirty:     true,
	}
}

// Phase returns the lifecycle phase of this level instance.
func (e *Engine) Phase() domain.Phase { return e.phase }

// Position returns the current position of a point id.
func (e *Engine) Position(id string) (geometry.Vec2, bool) {
	v, ok := e.positions[id]
	return v, ok
}

// Positions returns a copy of the current position map, keyed by point id.
func (e *Engine) Positions() map[string]geometry.Vec2 {
	out := make(map[string]geometry.Vec2, len(e.positions))
	for id, v := range e.positions {
		out[id] = v
	}
	return out
}

// MovePoint replaces the stored position for id. Unknown ids return
// ErrUnknownPoint and change nothing. Once the level is solved the level
// is frozen and moves become idempotent no-ops.
func (e *Engine) MovePoint(id string, x, y float64) error {
	if e.phase == domain.PhaseSolved {
		return nil
	}
	if _, ok := e.positions[id]; !ok {
		return domain.ErrUnknownPoint
	}
	e.positions[id] = geometry.Vec2{X: x, Y: y}
	e.dirty = true
	return nil
}

// Evaluate recomputes the tangled flag of every edge and the solved state.
// Adjacent edges (sharing a pin) are never mutually tangled. The result is
// cached until the next MovePoint, so back-to-back calls are identical.
func (e *Engine) Evaluate() Result {
	if !e.dirty {
		return e.last
	}

	tangled := make(map[string]bool, len(e.edges))
	for _, ed := range e.edges {
		tangled[ed.ID] = false
	}

	for i := 0; i < len(e.edges); i++ {
		for j := i + 1; j < len(e.edges); j++ {
			e1, e2 := e.edges[i], e.edges[j]
			if sharesEndpoint(e1, e2) {
				continue
			}
			a, b := e.positions[e1.P1], e.positions[e1.P2]
			c, d := e.positions[e2.P1], e.positions[e2.P2]
			if geometry.SegmentsCross(a, b, c, d) {
				tangled[e1.ID] = true
				tangled[e2.ID] = true
			}
		}
	}

	solved := len(e.edges) > 0
	for _, bad := range tangled {
		if bad {
			solved = false
			break
		}
	}

	e.last = Result{Tangled: tangled, Solved: solved}
	e.dirty = false

	switch {
	case solved:
		e.phase = domain.PhaseSolved
	case e.phase == domain.PhaseInitializing:
		e.phase = domain.PhaseActive
	}
	return e.last
}

func sharesEndpoint(a, b domain.Edge) bool {
	return a.P1 == b.P1 || a.P1 == b.P2 || a.P2 == b.P1 || a.P2 == b.P2
}
