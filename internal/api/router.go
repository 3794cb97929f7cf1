package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"HoldemCore/internal/game/manager"
	"HoldemCore/internal/websocket"
)

// NewRouter 组装 gin：CORS、健康检查、牌局路由、WebSocket 入口
func NewRouter(mgr *manager.GameManager, hub *websocket.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	NewHandler(mgr).Register(r)

	if hub != nil {
		r.GET("/ws", websocket.ServeWS(hub))
	}
	return r
}
