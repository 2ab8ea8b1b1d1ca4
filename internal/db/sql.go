package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS podcasts (
		feed_url TEXT PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		description TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		user_id TEXT NOT NULL REFERENCES users (id),
		feed_url TEXT NOT NULL REFERENCES podcasts (feed_url),
		seq INTEGER NOT NULL,
		PRIMARY KEY (user_id, feed_url)
	)`,
}

// SQLStore implements DB on top of a postgres or sqlite database.
// Queries are written with '?' placeholders and rebound for the driver.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Init creates the tables if they do not exist yet.
func (s *SQLStore) Init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return storageErr("create schema", err)
		}
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) q(query string) string {
	return s.db.Rebind(query)
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
