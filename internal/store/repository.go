package store

import (
	"context"
	"errors"

	"HoldemCore/internal/game/table"
)

var ErrNotFound = errors.New("not found")

// GameRepo 持久化牌局（只存牌局自身字段，玩家单独存）
type GameRepo interface {
	// SaveGame upserts the game, assigning an ID when it has none, and returns that ID.
	SaveGame(ctx context.Context, g *table.Table) (string, error)
	// LoadGame returns ErrNotFound for an unknown ID.
	LoadGame(ctx context.Context, id string) (*table.Table, error)
}

type PlayerRepo interface {
	SavePlayer(ctx context.Context, p *table.Player) (string, error)
	LoadPlayer(ctx context.Context, id string) (*table.Player, error)
}

type Repo interface {
	GameRepo
	PlayerRepo
}
