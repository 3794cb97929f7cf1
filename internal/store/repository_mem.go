package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"HoldemCore/internal/game/table"
)

// memRepo keeps JSON copies so callers never alias stored state.
type memRepo struct {
	mu      sync.RWMutex
	games   map[string][]byte
	players map[string][]byte
}

func NewMemoryRepo() Repo {
	return &memRepo{
		games:   make(map[string][]byte),
		players: make(map[string][]byte),
	}
}

func (m *memRepo) SaveGame(ctx context.Context, g *table.Table) (string, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	data, err := json.Marshal(g)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = data
	return g.ID, nil
}

func (m *memRepo) LoadGame(ctx context.Context, id string) (*table.Table, error) {
	m.mu.RLock()
	data, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	var g table.Table
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (m *memRepo) SavePlayer(ctx context.Context, p *table.Player) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.ID] = data
	return p.ID, nil
}

func (m *memRepo) LoadPlayer(ctx context.Context, id string) (*table.Player, error) {
	m.mu.RLock()
	data, ok := m.players[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	var p table.Player
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
