package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver
	"pods/internal/models"
)

var (
	// ErrNotFound is returned when a user id or feed URL is unknown.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a podcast is created twice for one feed URL.
	ErrAlreadyExists = errors.New("already exists")
	// ErrStorage wraps failures of the backing store itself.
	ErrStorage = errors.New("storage error")
)

// Supported values for the driver argument of Open.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB is the data access contract used by the rest of the application.
// MemoryStore is the default implementation; SQLStore persists the same
// records in postgres or sqlite.
type DB interface {
	CreateUser(ctx context.Context, name string) (models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (models.User, error)

	GetPodcast(ctx context.Context, feedURL string) (models.PodcastChannel, error)
	// CreatePodcast stores a new podcast. It fails with ErrAlreadyExists if
	// feedURL is already known; the stored record is never overwritten.
	CreatePodcast(ctx context.Context, feedURL, title, description string) (models.PodcastChannel, error)

	// Subscribe adds feedURL to the user's subscriptions unless it is
	// already there and returns the resulting ordered set.
	Subscribe(ctx context.Context, userID uuid.UUID, feedURL string) ([]string, error)

	Close() error
}

// Open returns the store selected by driver. SQL stores get their schema
// created before they are returned.
func Open(ctx context.Context, driver, dsn string) (DB, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverPostgres, DriverSQLite:
		if dsn == "" {
			return nil, fmt.Errorf("database url is required for driver %q", driver)
		}
		conn, err := sqlx.Connect(driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if driver == DriverSQLite {
			// every connection to ":memory:" would get its own database
			conn.SetMaxOpenConns(1)
		}
		store := NewSQLStore(conn)
		if err := store.Init(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}
