package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id        BIGSERIAL PRIMARY KEY,
	login     TEXT NOT NULL,
	riot_id   TEXT NOT NULL,
	region    TEXT NOT NULL,
	password  TEXT NOT NULL,
	rank      TEXT NOT NULL DEFAULT 'Unranked',
	lp        TEXT NOT NULL DEFAULT '0 LP',
	win_rate  TEXT NOT NULL DEFAULT '0%',
	image_src TEXT NOT NULL DEFAULT 'Unranked.webp'
);
`

type DB struct {
	DB *sqlx.DB
}

func Connect(databaseURL string) (*DB, error) {
	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &DB{DB: db}, nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

// Migrate creates the accounts table if it does not exist yet.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}
