package hint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/untangle/internal/domain"
	"svw.info/untangle/internal/engine"
)

func TestHintPicksTangledEdge(t *testing.T) {
	l := &domain.Level{
		Points: []domain.Point{
			{ID: "p0", X: 0, Y: 0},
			{ID: "p1", X: 10, Y: 0},
			{ID: "p2", X: 10, Y: 10},
			{ID: "p3", X: 0, Y: 10},
		},
		Edges: []domain.Edge{
			{ID: "e0", P1: "p0", P2: "p2"},
			{ID: "e1", P1: "p1", P2: "p3"},
		},
	}
	e := engine.New(l)
	res := e.Evaluate()
	require.False(t, res.Solved)

	h, ok, err := NewBusiest().Hint(context.Background(), l, e.Positions(), res.Tangled)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, []string{"e0", "e1"}, h.EdgeID)
	assert.NotEmpty(t, h.PointID)
	assert.NotEmpty(t, h.Message)
}

func TestNoHintWhenClear(t *testing.T) {
	l := &domain.Level{
		Points: []domain.Point{{ID: "p0", X: 0, Y: 0}, {ID: "p1", X: 1, Y: 0}},
		Edges:  []domain.Edge{{ID: "e0", P1: "p0", P2: "p1"}},
	}
	e := engine.New(l)
	res := e.Evaluate()

	_, ok, err := NewBusiest().Hint(context.Background(), l, e.Positions(), res.Tangled)
	require.NoError(t, err)
	assert.False(t, ok)
}
