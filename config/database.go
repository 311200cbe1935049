package config

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email TEXT NOT NULL DEFAULT '',
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		credits NUMERIC(12,2) NOT NULL DEFAULT 100 CHECK (credits >= 0),
		is_logged_in BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		subject TEXT NOT NULL,
		description TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
		quantity INTEGER NOT NULL CHECK (quantity >= 0),
		seller INTEGER NOT NULL REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS purchases (
		id SERIAL PRIMARY KEY,
		item_id INTEGER NOT NULL REFERENCES inventory(id),
		user_id INTEGER NOT NULL REFERENCES users(id),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		price_per_item NUMERIC(12,2) NOT NULL,
		total_cost NUMERIC(12,2) NOT NULL,
		datetime_purchased TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_seller ON inventory(seller)`,
	`CREATE INDEX IF NOT EXISTS idx_purchases_user ON purchases(user_id, datetime_purchased)`,
	`CREATE INDEX IF NOT EXISTS idx_purchases_item ON purchases(item_id)`,
}

// InitDB opens the connection pool, checks it and makes sure the schema exists.
func InitDB(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.PostgresConnStr())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)

	if err := CreateSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func CreateSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
