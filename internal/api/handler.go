package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"HoldemCore/internal/game/engine"
	"HoldemCore/internal/game/manager"
	"HoldemCore/internal/game/table"
	"HoldemCore/internal/store"
	"HoldemCore/internal/utils"
)

type Handler struct {
	mgr *manager.GameManager
}

func NewHandler(mgr *manager.GameManager) *Handler {
	return &Handler{mgr: mgr}
}

type CreateGameRequest struct {
	Names []string `json:"names" binding:"required,min=2"`
}

type BettingRoundRequest struct {
	Amount int64 `json:"amount"` // 0 = 配置默认值
}

type BetRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Amount   int64  `json:"amount" binding:"required"`
}

type FoldRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
}

// Register 挂载牌局路由
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/games")
	g.POST("", h.CreateGame)
	g.GET("/:id", h.GetGame)
	g.POST("/:id/start", h.Start)
	g.POST("/:id/betting-round", h.BettingRound)
	g.POST("/:id/bet", h.Bet)
	g.POST("/:id/fold", h.Fold)
	g.POST("/:id/next-round", h.NextRound)
}

// POST /games  body: {names}
func (h *Handler) CreateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap, err := h.mgr.CreateGame(c.Request.Context(), req.Names)
	if errors.Is(err, engine.ErrNotEnoughPlayers) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respond(c, http.StatusCreated, snap, err)
}

// GET /games/:id
func (h *Handler) GetGame(c *gin.Context) {
	snap, err := h.mgr.State(c.Request.Context(), c.Param("id"))
	h.respond(c, http.StatusOK, snap, err)
}

// POST /games/:id/start
func (h *Handler) Start(c *gin.Context) {
	snap, err := h.mgr.StartRound(c.Request.Context(), c.Param("id"))
	h.respond(c, http.StatusOK, snap, err)
}

// POST /games/:id/betting-round  body: {amount}（可省略）
func (h *Handler) BettingRound(c *gin.Context) {
	var req BettingRoundRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	snap, err := h.mgr.BettingRound(c.Request.Context(), c.Param("id"), req.Amount)
	h.respond(c, http.StatusOK, snap, err)
}

// POST /games/:id/bet  body: {playerId, amount}
func (h *Handler) Bet(c *gin.Context) {
	var req BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap, err := h.mgr.Bet(c.Request.Context(), c.Param("id"), req.PlayerID, req.Amount)
	h.respond(c, http.StatusOK, snap, err)
}

// POST /games/:id/fold  body: {playerId}
func (h *Handler) Fold(c *gin.Context) {
	var req FoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap, err := h.mgr.Fold(c.Request.Context(), c.Param("id"), req.PlayerID)
	h.respond(c, http.StatusOK, snap, err)
}

// POST /games/:id/next-round
func (h *Handler) NextRound(c *gin.Context) {
	snap, err := h.mgr.NextRound(c.Request.Context(), c.Param("id"))
	h.respond(c, http.StatusOK, snap, err)
}

func (h *Handler) respond(c *gin.Context, ok int, snap table.Snapshot, err error) {
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			utils.Print.Error("request failed", "path", c.FullPath(), "err", err)
		}
		c.JSON(code, gin.H{"error": err.Error()})
		return
	}
	c.JSON(ok, snap)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, engine.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidAmount),
		errors.Is(err, engine.ErrInvalidCommunityCount),
		errors.Is(err, engine.ErrInsufficientChips),
		errors.Is(err, manager.ErrInvalidNames):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrHandInProgress),
		errors.Is(err, engine.ErrHandNotStarted),
		errors.Is(err, engine.ErrHandEnded),
		errors.Is(err, engine.ErrPotNotSettled),
		errors.Is(err, engine.ErrPlayerFolded),
		errors.Is(err, engine.ErrNoActivePlayers),
		errors.Is(err, engine.ErrNotEnoughPlayers):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
