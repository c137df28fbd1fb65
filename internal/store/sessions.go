package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MikeSquared-Agency/scout/internal/conversation"
)

var _ conversation.Store = (*Store)(nil)

// Get loads the conversation context for a session. Unknown, malformed or
// expired sessions yield the zero context.
func (s *Store) Get(ctx context.Context, sessionID string) (conversation.Context, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return conversation.Context{}, nil
	}

	var (
		raw       []byte
		updatedAt time.Time
	)
	err = s.pool.QueryRow(ctx, `
		SELECT context, updated_at FROM conversation_sessions WHERE session_id = $1`,
		id,
	).Scan(&raw, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return conversation.Context{}, nil
	}
	if err != nil {
		return conversation.Context{}, fmt.Errorf("get session: %w", err)
	}
	if s.ttl > 0 && time.Since(updatedAt) > s.ttl {
		return conversation.Context{}, nil
	}

	var c conversation.Context
	if err := json.Unmarshal(raw, &c); err != nil {
		return conversation.Context{}, fmt.Errorf("decode session: %w", err)
	}
	return c, nil
}

// Set overwrites the conversation context for a session.
func (s *Store) Set(ctx context.Context, sessionID string, c conversation.Context) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", sessionID, err)
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO conversation_sessions (session_id, context, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (session_id)
		DO UPDATE SET context = $2, updated_at = now()`,
		id, string(raw),
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// PurgeExpired deletes sessions older than the store's TTL and returns how
// many were removed.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM conversation_sessions WHERE updated_at < $1`,
		time.Now().Add(-s.ttl),
	)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
