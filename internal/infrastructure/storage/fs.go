package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"svw.info/untangle/internal/domain"
)

// FS persists levels and player progress as JSON files under a data dir:
// levels/<id>.json for saved levels, progress.json for unlock state.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) levelPath(id string) string {
	return filepath.Join(s.dir, "levels", strings.TrimSpace(id)+".json")
}

func (s *FS) progressPath() string {
	return filepath.Join(s.dir, "progress.json")
}

func (s *FS) SaveLevel(ctx context.Context, l *domain.Level) error {
	if l == nil || l.ID == "" {
		return errors.New("invalid level: missing ID")
	}
	target := s.levelPath(l.ID)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

func (s *FS) LoadLevel(ctx context.Context, id string) (*domain.Level, error) {
	data, err := os.ReadFile(s.levelPath(id))
	if err != nil {
		return nil, err
	}
	var out domain.Level
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FS) ListLevels(ctx context.Context) ([]domain.LevelMeta, error) {
	ents, err := os.ReadDir(filepath.Join(s.dir, "levels"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []domain.LevelMeta
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, "levels", e.Name()))
		if err != nil {
			continue
		}
		var m domain.LevelMeta
		if err := json.Unmarshal(data, &m); err != nil || m.ID == "" {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

// LoadProgress returns the stored unlock state; a missing file means a
// fresh player with level 1 unlocked.
func (s *FS) LoadProgress(ctx context.Context) (domain.Progress, error) {
	data, err := os.ReadFile(s.progressPath())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Progress{Unlocked: 1}, nil
		}
		return domain.Progress{}, err
	}
	var p domain.Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Progress{}, err
	}
	if p.Unlocked < 1 {
		p.Unlocked = 1
	}
	return p, nil
}

func (s *FS) SaveProgress(ctx context.Context, p domain.Progress) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.progressPath(), data, 0o644)
}
