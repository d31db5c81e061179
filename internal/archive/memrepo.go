package archive

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/park285/cheese-board/internal/domain"
)

// MemoryRepository keeps archived games in process memory. It is used when
// no database is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	games map[string]*domain.GameRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{games: make(map[string]*domain.GameRecord)}
}

func (m *MemoryRepository) SaveGame(ctx context.Context, g *domain.GameRecord) error {
	if g == nil {
		return nil
	}
	cp := cloneRecord(g)
	m.mu.Lock()
	m.games[strings.TrimSpace(g.ID)] = cp
	m.mu.Unlock()
	return nil
}

func (m *MemoryRepository) GetGame(ctx context.Context, id string) (*domain.GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[strings.TrimSpace(id)]
	if !ok {
		return nil, ErrGameNotFound
	}
	return cloneRecord(g), nil
}

// RecentGames orders by EndedAt desc, then ID desc.
func (m *MemoryRepository) RecentGames(ctx context.Context, limit int) ([]*domain.GameRecord, error) {
	m.mu.RLock()
	items := make([]*domain.GameRecord, 0, len(m.games))
	for _, g := range m.games {
		items = append(items, cloneRecord(g))
	}
	m.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if !items[i].EndedAt.Equal(items[j].EndedAt) {
			return items[i].EndedAt.After(items[j].EndedAt)
		}
		return items[i].ID > items[j].ID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *MemoryRepository) Close() error { return nil }

func cloneRecord(g *domain.GameRecord) *domain.GameRecord {
	cp := *g
	cp.Moves = append([]string(nil), g.Moves...)
	return &cp
}
