package validator

import (
	"context"

	"svw.info/untangle/internal/domain"
)

// FastValidator checks the structural invariants of a level: unique point
// ids, edges referencing two distinct existing points, and no duplicate
// unordered pair. Geometry is not its concern.
type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

func (v *FastValidator) Validate(ctx context.Context, l *domain.Level) (bool, []domain.Fault, error) {
	faults := make([]domain.Fault, 0, 4)

	points := make(map[string]bool, len(l.Points))
	for _, p := range l.Points {
		if p.ID == "" {
			faults = append(faults, domain.Fault{Ref: p.ID, Reason: "empty point id"})
			continue
		}
		if points[p.ID] {
			faults = append(faults, domain.Fault{Ref: p.ID, Reason: "duplicate point id"})
		}
		points[p.ID] = true
	}

	pairs := make(map[[2]string]bool, len(l.Edges))
	for _, e := range l.Edges {
		if e.P1 == e.P2 {
			faults = append(faults, domain.Fault{Ref: e.ID, Reason: "edge connects a point to itself"})
			continue
		}
		if !points[e.P1] || !points[e.P2] {
			faults = append(faults, domain.Fault{Ref: e.ID, Reason: "edge references unknown point"})
			continue
		}
		k := pairKey(e.P1, e.P2)
		if pairs[k] {
			faults = append(faults, domain.Fault{Ref: e.ID, Reason: "duplicate edge pair"})
		}
		pairs[k] = true
	}

	return len(faults) == 0, faults, nil
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
