package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	Store struct {
		Driver string // memory | redis | postgres | sqlite
		DSN    string
		TTL    int // seconds, redis only
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Game struct {
		StartingChips int64
		BetAmount     int64
		Seed          int64 // 0 = 按时间取种子
	}
	Log struct {
		Level string
	}
}

var C Config

var drivers = []string{"memory", "redis", "postgres", "sqlite"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.ttl", 0)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("game.startingChips", 1000)
	v.SetDefault("game.betAmount", 10)
	v.SetDefault("game.seed", 0)
	v.SetDefault("log.level", "info")
}

// Load 读取配置文件（path 为空则只用默认值），HOLDEM_ 前缀的环境变量优先
func Load(path string) error {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("holdem")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := c.validate(); err != nil {
		return err
	}
	C = c
	return nil
}

func (c *Config) validate() error {
	ok := false
	for _, d := range drivers {
		if c.Store.Driver == d {
			ok = true
		}
	}
	if !ok {
		return fmt.Errorf("store.driver %q: want one of %s", c.Store.Driver, strings.Join(drivers, ", "))
	}
	if (c.Store.Driver == "postgres" || c.Store.Driver == "sqlite") && c.Store.DSN == "" {
		return fmt.Errorf("store.dsn required for %s", c.Store.Driver)
	}
	if c.Game.StartingChips <= 0 {
		return errors.New("game.startingChips must be positive")
	}
	if c.Game.BetAmount <= 0 {
		return errors.New("game.betAmount must be positive")
	}
	return nil
}
