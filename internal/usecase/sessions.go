package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"svw.info/untangle/internal/domain"
	"svw.info/untangle/internal/engine"
)

// session is one live level instance. Its mutex serializes engine access;
// the engine itself is single-threaded by contract.
type session struct {
	mu     sync.Mutex
	level  *domain.Level
	engine *engine.Engine
}

// Start generates a fresh level and opens a session for it, returning the
// session id, the level for initial rendering, and the first evaluation.
func (u *Service) Start(ctx context.Context, seed int64, level int) (string, *domain.Level, engine.Result, error) {
	if u.Generator == nil {
		return "", nil, engine.Result{}, errNotConfigured
	}
	l, _, err := u.Generator.Generate(ctx, seed, level)
	if err != nil {
		return "", nil, engine.Result{}, err
	}
	id, res := u.open(l)
	return id, l, res, nil
}

// StartFrom opens a session for an externally supplied level (a saved or
// hand-built one) after validating its structure.
func (u *Service) StartFrom(ctx context.Context, l *domain.Level) (string, engine.Result, error) {
	ok, faults, err := u.Validate(ctx, l)
	if err != nil {
		return "", engine.Result{}, err
	}
	if !ok {
		return "", engine.Result{}, fmt.Errorf("invalid level: %s (%s)", faults[0].Reason, faults[0].Ref)
	}
	id, res := u.open(l)
	return id, res, nil
}

func (u *Service) open(l *domain.Level) (string, engine.Result) {
	s := &session{level: l, engine: engine.New(l)}
	res := s.engine.Evaluate()
	id := uuid.NewString()
	u.mu.Lock()
	u.sessions[id] = s
	u.mu.Unlock()
	return id, res
}

// Move applies one drag update and evaluates. When the move freshly solves
// the level, unlocked progress is bumped best-effort; a storage hiccup
// never fails the move itself.
func (u *Service) Move(ctx context.Context, sessionID, pointID string, x, y float64) (engine.Result, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return engine.Result{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	wasSolved := s.engine.Phase() == domain.PhaseSolved
	if err := s.engine.MovePoint(pointID, x, y); err != nil {
		return engine.Result{}, err
	}
	res := s.engine.Evaluate()
	if res.Solved && !wasSolved {
		u.unlock(ctx, s.level.Index+1)
	}
	return res, nil
}

// Evaluate re-runs the evaluation of a session without moving anything.
func (u *Service) Evaluate(sessionID string) (engine.Result, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return engine.Result{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Evaluate(), nil
}

// Hint suggests the next pin to drag for a session.
func (u *Service) Hint(ctx context.Context, sessionID string) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	s, err := u.session(sessionID)
	if err != nil {
		return domain.Hint{}, false, err
	}
	s.mu.Lock()
	res := s.engine.Evaluate()
	positions := s.engine.Positions()
	level := s.level
	s.mu.Unlock()
	return u.Hinter.Hint(ctx, level, positions, res.Tangled)
}

// Phase reports the lifecycle phase of a session.
func (u *Service) Phase(sessionID string) (domain.Phase, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return domain.PhaseInitializing, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Phase(), nil
}

// End discards a session. Restarting a level always means a new Start.
func (u *Service) End(sessionID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.sessions[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(u.sessions, sessionID)
	return nil
}

func (u *Service) session(id string) (*session, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	s, ok := u.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (u *Service) unlock(ctx context.Context, next int) {
	if u.Storage == nil {
		return
	}
	p, err := u.Storage.LoadProgress(ctx)
	if err != nil {
		return
	}
	if next <= p.Unlocked {
		return
	}
	_ = u.Storage.SaveProgress(ctx, domain.Progress{
		Unlocked:  next,
		UpdatedAt: time.Now().UnixNano(),
	})
}
