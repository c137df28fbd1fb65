package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// New connects to Postgres. Sessions untouched for longer than ttl are
// treated as expired; a zero ttl keeps them indefinitely.
func New(ctx context.Context, databaseURL string, ttl time.Duration) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool, ttl: ttl}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS conversation_sessions (
	session_id uuid PRIMARY KEY,
	context    jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

// Migrate creates the tables scout needs.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
