package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"HoldemCore/config"
	"HoldemCore/internal/api"
	"HoldemCore/internal/game/manager"
	"HoldemCore/internal/storage"
	"HoldemCore/internal/store"
	"HoldemCore/internal/utils"
	"HoldemCore/internal/websocket"
)

func main() {
	cfgPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	if err := config.Load(*cfgPath); err != nil {
		utils.Print.Fatal("config load failed", "err", err)
	}
	utils.Init(config.C.Log.Level)

	//-------------------------------------------------------
	// 1. 初始化存储
	//-------------------------------------------------------
	repo, err := openRepo()
	if err != nil {
		utils.Print.Fatal("store init failed", "driver", config.C.Store.Driver, "err", err)
	}
	defer storage.Close()

	//-------------------------------------------------------
	// 2. 初始化 Hub（必须最先启动）
	//-------------------------------------------------------
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Close()

	//-------------------------------------------------------
	// 3. 初始化 GameManager，接管玩家的 websocket 动作
	//-------------------------------------------------------
	gameMgr := manager.NewGameManager(repo, hub, manager.Options{
		StartingChips: config.C.Game.StartingChips,
		BetAmount:     config.C.Game.BetAmount,
		Seed:          config.C.Game.Seed,
	})
	hub.OnIncoming = func(msg websocket.IncomingMessage) {
		// 不阻塞 hub 的事件循环
		go gameMgr.HandlePlayerMessage(msg)
	}

	//-------------------------------------------------------
	// 4. 路由 + 启动服务器
	//-------------------------------------------------------
	if config.C.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:    config.C.Server.Port,
		Handler: api.NewRouter(gameMgr, hub),
	}

	go func() {
		utils.Print.Info("Server running", "addr", config.C.Server.Port, "store", config.C.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Print.Fatal("server failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Print.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Print.Error("shutdown", "err", err)
	}
}

func openRepo() (store.Repo, error) {
	c := config.C
	switch c.Store.Driver {
	case "redis":
		if err := storage.InitRedis(c.Redis.Addr, c.Redis.Password, c.Redis.DB); err != nil {
			return nil, err
		}
		return store.NewRedisRepo(storage.Rdb, c.Store.TTL), nil
	case "postgres", "sqlite":
		if err := storage.InitSQL(c.Store.Driver, c.Store.DSN); err != nil {
			return nil, err
		}
		repo := store.NewSQLRepo(storage.DB, c.Store.Driver)
		if err := store.EnsureSchema(storage.Ctx, repo); err != nil {
			return nil, err
		}
		return repo, nil
	}
	return store.NewMemoryRepo(), nil
}
