package db

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var DB *pgxpool.Pool

// Connect initializes the connection pool. Pool size is bounded; a
// request that cannot acquire a connection within the acquire timeout
// fails rather than queueing forever.
func Connect() (*pgxpool.Pool, error) {
	dsn := os.Getenv("POSTGRES_URL")

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		maxConns, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		cfg.MaxConns = int32(maxConns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Try pinging to make sure it's valid
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	DB = pool

	return pool, nil
}

// ClosePool is for graceful shutdown
func ClosePool() {
	if DB != nil {
		DB.Close()
	}
}
