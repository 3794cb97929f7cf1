package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

// InitSQL opens DB for driver "postgres" or "sqlite" and pings it.
func InitSQL(driver, dsn string) error {
	switch driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return err
	}
	if driver == "sqlite" {
		// sqlite 单写者
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(Ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return err
	}
	DB = db
	return nil
}
