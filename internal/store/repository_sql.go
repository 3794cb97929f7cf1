package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"HoldemCore/internal/game/table"
)

// 表结构：标量列用于查询，state 列存完整 JSON
var schema = []string{
	`CREATE TABLE IF NOT EXISTS games (
		id          TEXT PRIMARY KEY,
		phase       TEXT NOT NULL,
		pot         BIGINT NOT NULL,
		current_bet BIGINT NOT NULL,
		state       TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id    TEXT PRIMARY KEY,
		name  TEXT NOT NULL,
		chips BIGINT NOT NULL,
		state TEXT NOT NULL
	)`,
}

type sqlRepo struct {
	db     *sql.DB
	driver string
}

// NewSQLRepo works with the "postgres" and "sqlite" drivers.
func NewSQLRepo(db *sql.DB, driver string) Repo {
	return &sqlRepo{db: db, driver: driver}
}

func (r *sqlRepo) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// EnsureSchema creates the tables when repo is SQL backed; other repos are left alone.
func EnsureSchema(ctx context.Context, repo Repo) error {
	if r, ok := repo.(*sqlRepo); ok {
		return r.EnsureSchema(ctx)
	}
	return nil
}

func (r *sqlRepo) SaveGame(ctx context.Context, g *table.Table) (string, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	data, err := json.Marshal(g)
	if err != nil {
		return "", err
	}
	_, err = r.db.ExecContext(ctx, r.rebind(`
		INSERT INTO games (id, phase, pot, current_bet, state) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			phase = excluded.phase,
			pot = excluded.pot,
			current_bet = excluded.current_bet,
			state = excluded.state`),
		g.ID, string(g.Phase), g.Pot, g.CurrentBet, string(data))
	if err != nil {
		return "", fmt.Errorf("save game %s: %w", g.ID, err)
	}
	return g.ID, nil
}

func (r *sqlRepo) LoadGame(ctx context.Context, id string) (*table.Table, error) {
	var data string
	err := r.db.QueryRowContext(ctx, r.rebind(`SELECT state FROM games WHERE id = ?`), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var g table.Table
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *sqlRepo) SavePlayer(ctx context.Context, p *table.Player) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	_, err = r.db.ExecContext(ctx, r.rebind(`
		INSERT INTO players (id, name, chips, state) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			chips = excluded.chips,
			state = excluded.state`),
		p.ID, p.Name, p.Chips, string(data))
	if err != nil {
		return "", fmt.Errorf("save player %s: %w", p.ID, err)
	}
	return p.ID, nil
}

func (r *sqlRepo) LoadPlayer(ctx context.Context, id string) (*table.Player, error) {
	var data string
	err := r.db.QueryRowContext(ctx, r.rebind(`SELECT state FROM players WHERE id = ?`), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var p table.Player
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// rebind 把 ? 占位符换成 postgres 的 $n
func (r *sqlRepo) rebind(q string) string {
	if r.driver != "postgres" {
		return q
	}
	var b strings.Builder
	n := 0
	for _, ch := range q {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
