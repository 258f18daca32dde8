package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/untangle/internal/domain"
	"svw.info/untangle/internal/generator"
	"svw.info/untangle/internal/hint"
	"svw.info/untangle/internal/validator"
)

// memStore is an in-memory Storage for tests.
type memStore struct {
	levels   map[string]*domain.Level
	progress domain.Progress
}

func newMemStore() *memStore {
	return &memStore{levels: make(map[string]*domain.Level), progress: domain.Progress{Unlocked: 1}}
}

func (m *memStore) SaveLevel(_ context.Context, l *domain.Level) error {
	m.levels[l.ID] = l
	return nil
}

func (m *memStore) LoadLevel(_ context.Context, id string) (*domain.Level, error) {
	l, ok := m.levels[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return l, nil
}

func (m *memStore) ListLevels(_ context.Context) ([]domain.LevelMeta, error) { return nil, nil }

func (m *memStore) LoadProgress(_ context.Context) (domain.Progress, error) {
	return m.progress, nil
}

func (m *memStore) SaveProgress(_ context.Context, p domain.Progress) error {
	m.progress = p
	return nil
}

func newTestService(st *memStore) *Service {
	return NewService(generator.NewRingGenerator(), validator.New(), hint.NewBusiest(), st)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	u := newTestService(st)

	id, level, res, err := u.Start(ctx, 7, 1)
	require.NoError(t, err)
	require.Len(t, level.Points, 5)
	assert.NotEmpty(t, id)

	// Unknown references are recovered locally, never fatal.
	_, err = u.Move(ctx, "missing", "p0", 0, 0)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = u.Move(ctx, id, "p99", 0, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownPoint)

	// Drag every pin back onto the solved ring layout.
	n := len(level.Points)
	for i, p := range level.Points {
		pos := generator.RingPosition(i, n)
		res, err = u.Move(ctx, id, p.ID, pos.X, pos.Y)
		require.NoError(t, err)
	}
	assert.True(t, res.Solved)

	phase, err := u.Phase(id)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSolved, phase)

	// Solving level 1 unlocks level 2.
	p, err := u.Progress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Unlocked)

	require.NoError(t, u.End(id))
	assert.ErrorIs(t, u.End(id), domain.ErrSessionNotFound)
}

func TestStartFromRejectsBrokenLevel(t *testing.T) {
	u := newTestService(newMemStore())
	_, _, err := u.StartFrom(context.Background(), &domain.Level{
		Points: []domain.Point{{ID: "p0"}},
		Edges:  []domain.Edge{{ID: "e0", P1: "p0", P2: "p0"}},
	})
	assert.Error(t, err)
}

func TestStartRejectsBadIndex(t *testing.T) {
	u := newTestService(newMemStore())
	_, _, _, err := u.Start(context.Background(), 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidLevelIndex)
}
