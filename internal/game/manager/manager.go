package manager

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"HoldemCore/internal/game/engine"
	"HoldemCore/internal/game/table"
	"HoldemCore/internal/store"
	"HoldemCore/internal/utils"
	"HoldemCore/internal/websocket"
)

var ErrInvalidNames = errors.New("every player needs a non-empty name")

type Options struct {
	StartingChips int64
	BetAmount     int64 // BettingRound 未给金额时使用
	Seed          int64 // 0 = 按时间取种子
}

// GameManager 管理所有对局：每次操作都从仓库加载，执行后保存并推送
type GameManager struct {
	repo store.Repo
	hub  websocket.HubInterface // 可为 nil
	opts Options

	mu    sync.Mutex
	locks map[string]*sync.Mutex // gameID → 串行化同一局的操作

	rndMu sync.Mutex
	rnd   *rand.Rand // 只用来派生每次操作的种子
}

func NewGameManager(repo store.Repo, hub websocket.HubInterface, opts Options) *GameManager {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &GameManager{
		repo:  repo,
		hub:   hub,
		opts:  opts,
		locks: make(map[string]*sync.Mutex),
		rnd:   rand.New(rand.NewSource(seed)),
	}
}

func (m *GameManager) lock(gameID string) func() {
	m.mu.Lock()
	l, ok := m.locks[gameID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[gameID] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (m *GameManager) newRand() *rand.Rand {
	m.rndMu.Lock()
	defer m.rndMu.Unlock()
	return rand.New(rand.NewSource(m.rnd.Int63()))
}

// CreateGame seats one player per name with the configured starting stack.
func (m *GameManager) CreateGame(ctx context.Context, names []string) (table.Snapshot, error) {
	if len(names) < 2 {
		return table.Snapshot{}, engine.ErrNotEnoughPlayers
	}
	players := make([]*table.Player, 0, len(names))
	ids := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return table.Snapshot{}, ErrInvalidNames
		}
		p := table.NewPlayer(name, m.opts.StartingChips)
		if _, err := m.repo.SavePlayer(ctx, p); err != nil {
			return table.Snapshot{}, fmt.Errorf("save player %s: %w", name, err)
		}
		players = append(players, p)
		ids = append(ids, p.ID)
	}

	t := table.NewTable(ids)
	if _, err := m.repo.SaveGame(ctx, t); err != nil {
		return table.Snapshot{}, fmt.Errorf("save game: %w", err)
	}
	eng, err := engine.NewEngine(t, players, m.newRand())
	if err != nil {
		return table.Snapshot{}, err
	}

	utils.Print.Info("game created", "game", t.ID, "players", len(ids))
	return eng.State(), nil
}

func (m *GameManager) State(ctx context.Context, gameID string) (table.Snapshot, error) {
	unlock := m.lock(gameID)
	defer unlock()

	eng, err := m.load(ctx, gameID)
	if err != nil {
		return table.Snapshot{}, err
	}
	return eng.State(), nil
}

func (m *GameManager) StartRound(ctx context.Context, gameID string) (table.Snapshot, error) {
	return m.withEngine(ctx, gameID, "start", func(e *engine.Engine) error {
		return e.StartRound()
	})
}

// BettingRound uses the configured bet amount when amount is 0.
func (m *GameManager) BettingRound(ctx context.Context, gameID string, amount int64) (table.Snapshot, error) {
	if amount == 0 {
		amount = m.opts.BetAmount
	}
	return m.withEngine(ctx, gameID, "betting_round", func(e *engine.Engine) error {
		return e.BettingRound(amount)
	})
}

func (m *GameManager) Bet(ctx context.Context, gameID, playerID string, amount int64) (table.Snapshot, error) {
	return m.withEngine(ctx, gameID, "bet", func(e *engine.Engine) error {
		return e.Bet(playerID, amount)
	})
}

func (m *GameManager) Fold(ctx context.Context, gameID, playerID string) (table.Snapshot, error) {
	return m.withEngine(ctx, gameID, "fold", func(e *engine.Engine) error {
		return e.Fold(playerID)
	})
}

// NextRound deals the next street, or settles the hand after the river.
func (m *GameManager) NextRound(ctx context.Context, gameID string) (table.Snapshot, error) {
	return m.withEngine(ctx, gameID, "next_round", func(e *engine.Engine) error {
		_, err := e.Advance()
		return err
	})
}

// withEngine: 加载 → 执行 → 摊牌自动派奖 → 保存 → 推送
// 操作失败时什么都不保存
func (m *GameManager) withEngine(ctx context.Context, gameID, op string, fn func(*engine.Engine) error) (table.Snapshot, error) {
	unlock := m.lock(gameID)
	defer unlock()

	eng, err := m.load(ctx, gameID)
	if err != nil {
		return table.Snapshot{}, err
	}
	if err := fn(eng); err != nil {
		utils.Print.Debug("operation rejected", "game", gameID, "op", op, "err", err)
		return table.Snapshot{}, err
	}

	if eng.Table.Phase == table.PhaseShowdown && eng.Table.Pot > 0 {
		payouts, err := eng.AwardPot()
		if err != nil {
			return table.Snapshot{}, err
		}
		utils.Print.Info("pot awarded", "game", gameID, "payouts", payouts)
	}

	if err := m.save(ctx, eng); err != nil {
		utils.Print.Error("save failed", "game", gameID, "op", op, "err", err)
		return table.Snapshot{}, err
	}

	snap := eng.State()
	utils.Print.Debug("operation applied", "game", gameID, "op", op, "phase", snap.Phase, "pot", snap.Pot)
	m.push(eng.Table.PlayerIDs, snap)
	return snap, nil
}

func (m *GameManager) load(ctx context.Context, gameID string) (*engine.Engine, error) {
	t, err := m.repo.LoadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	players := make([]*table.Player, 0, len(t.PlayerIDs))
	for _, id := range t.PlayerIDs {
		p, err := m.repo.LoadPlayer(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", gameID, err)
		}
		players = append(players, p)
	}
	return engine.NewEngine(t, players, m.newRand())
}

func (m *GameManager) save(ctx context.Context, e *engine.Engine) error {
	for _, p := range e.Players {
		if _, err := m.repo.SavePlayer(ctx, p); err != nil {
			return err
		}
	}
	_, err := m.repo.SaveGame(ctx, e.Table)
	return err
}

func (m *GameManager) push(playerIDs []string, snap table.Snapshot) {
	if m.hub == nil {
		return
	}
	m.hub.BroadcastToPlayers(playerIDs, websocket.OutgoingMessage{
		Event: websocket.EventState,
		Data:  snap,
	})
}
