package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"delivery-date-service/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Options tunes the connection pool.
type Options struct {
	MaxConns        int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

// OptionsFromConf reads PG_MAX_CONNS, PG_CONN_MAX_LIFETIME and PG_PING_TIMEOUT.
func OptionsFromConf(c config.Conf) Options {
	pg := c.Prefix("PG_")
	return Options{
		MaxConns:        pg.MayInt("MAX_CONNS", 10),
		ConnMaxLifetime: pg.MayDuration("CONN_MAX_LIFETIME", 30*time.Minute),
		PingTimeout:     pg.MayDuration("PING_TIMEOUT", 5*time.Second),
	}
}

func Open(ctx context.Context, databaseURL string, opt Options) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	if opt.MaxConns <= 0 {
		opt.MaxConns = 10
	}
	db.SetMaxOpenConns(opt.MaxConns)
	db.SetMaxIdleConns(opt.MaxConns)
	if opt.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opt.ConnMaxLifetime)
	}

	if opt.PingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opt.PingTimeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}
