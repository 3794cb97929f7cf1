package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"HoldemCore/internal/game/table"
)

type redisRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisRepo stores JSON values; ttlSeconds <= 0 keeps keys forever.
func NewRedisRepo(rdb *redis.Client, ttlSeconds int) Repo {
	return &redisRepo{rdb: rdb, ttl: time.Duration(ttlSeconds) * time.Second}
}

// key 约定：
//
//	kv: holdem:game:{id}    -> JSON(table.Table)
//	kv: holdem:player:{id}  -> JSON(table.Player)
func gameKey(id string) string {
	return fmt.Sprintf("holdem:game:%s", id)
}
func playerKey(id string) string {
	return fmt.Sprintf("holdem:player:%s", id)
}

func (r *redisRepo) SaveGame(ctx context.Context, g *table.Table) (string, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if err := r.put(ctx, gameKey(g.ID), g); err != nil {
		return "", err
	}
	return g.ID, nil
}

func (r *redisRepo) LoadGame(ctx context.Context, id string) (*table.Table, error) {
	var g table.Table
	if err := r.get(ctx, gameKey(id), &g); err != nil {
		return nil, fmt.Errorf("game %s: %w", id, err)
	}
	return &g, nil
}

func (r *redisRepo) SavePlayer(ctx context.Context, p *table.Player) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := r.put(ctx, playerKey(p.ID), p); err != nil {
		return "", err
	}
	return p.ID, nil
}

func (r *redisRepo) LoadPlayer(ctx context.Context, id string) (*table.Player, error) {
	var p table.Player
	if err := r.get(ctx, playerKey(id), &p); err != nil {
		return nil, fmt.Errorf("player %s: %w", id, err)
	}
	return &p, nil
}

func (r *redisRepo) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, key, data, r.ttl).Err()
}

func (r *redisRepo) get(ctx context.Context, key string, v any) error {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
