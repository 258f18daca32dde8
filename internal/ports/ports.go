package ports

import (
	"context"
	"time"

	"svw.info/untangle/internal/domain"
	"svw.info/untangle/internal/geometry"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Rejected int // chord candidates discarded as duplicates or crossings
	Duration time.Duration
}

// Generator creates a solvable level for a difficulty index. Randomness
// comes only from the seed, so equal inputs yield equal levels.
type Generator interface {
	Generate(ctx context.Context, seed int64, level int) (*domain.Level, Stats, error)
}

// Validator performs fast structural checks on a level (id uniqueness,
// edge references, duplicate pairs).
type Validator interface {
	Validate(ctx context.Context, l *domain.Level) (ok bool, faults []domain.Fault, err error)
}

// Hinter suggests the next pin worth dragging given the current positions
// and the tangled flags of the last evaluation.
type Hinter interface {
	Hint(ctx context.Context, l *domain.Level, positions map[string]geometry.Vec2, tangled map[string]bool) (domain.Hint, bool, error)
}

// Storage persists levels and player progress as JSON.
type Storage interface {
	SaveLevel(ctx context.Context, l *domain.Level) error
	LoadLevel(ctx context.Context, id string) (*domain.Level, error)
	ListLevels(ctx context.Context) ([]domain.LevelMeta, error)
	LoadProgress(ctx context.Context) (domain.Progress, error)
	SaveProgress(ctx context.Context, p domain.Progress) error
}
