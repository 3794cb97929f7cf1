package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client
var Ctx = context.Background()

func InitRedis(addr, password string, db int) error {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := Rdb.Ping(Ctx).Err(); err != nil {
		Rdb.Close()
		Rdb = nil
		return err
	}
	return nil
}

// Close 释放已初始化的连接
func Close() {
	if Rdb != nil {
		_ = Rdb.Close()
	}
	if DB != nil {
		_ = DB.Close()
	}
}
