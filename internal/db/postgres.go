package db

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres opens the pool and makes sure the schema exists.
// Fatal on failure: a DATABASE_URL that is set but unreachable is a
// deployment error, not something to limp past.
func ConnectPostgres(dsn string) *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	log.Println("Connected to PostgreSQL")
	return pool
}

func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	historySQL := `
		CREATE TABLE IF NOT EXISTS advice_history (
			id UUID PRIMARY KEY,
			category VARCHAR(100) NOT NULL,
			brand VARCHAR(100) NOT NULL DEFAULT '',
			model VARCHAR(100) NOT NULL DEFAULT '',
			city VARCHAR(100) NOT NULL DEFAULT '',
			plan_tier VARCHAR(20) NOT NULL DEFAULT 'free',
			model_used VARCHAR(100) NOT NULL,
			market_price_low NUMERIC NOT NULL,
			market_price_high NUMERIC NOT NULL,
			suggested_price NUMERIC NOT NULL,
			confidence VARCHAR(10) NOT NULL,
			searched BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, historySQL); err != nil {
		return err
	}

	indexSQL := `
		CREATE INDEX IF NOT EXISTS idx_advice_history_created_at
		ON advice_history (created_at DESC)
	`
	if _, err := pool.Exec(ctx, indexSQL); err != nil {
		return err
	}

	return nil
}
