package db

import (
	"context"

	"github.com/google/uuid"
)

func (s *SQLStore) Subscribe(ctx context.Context, userID uuid.UUID, feedURL string) ([]string, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageErr("begin subscribe", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.GetContext(ctx, &count, s.q(`SELECT COUNT(*) FROM podcasts WHERE feed_url = ?`), feedURL); err != nil {
		return nil, storageErr("find podcast", err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	if err := tx.GetContext(ctx, &count, s.q(`SELECT COUNT(*) FROM users WHERE id = ?`), userID); err != nil {
		return nil, storageErr("find user", err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	// seq keeps the subscription order; duplicates are dropped by the primary key
	var next int
	if err := tx.GetContext(ctx, &next, s.q(`SELECT COUNT(*) FROM subscriptions WHERE user_id = ?`), userID); err != nil {
		return nil, storageErr("count subscriptions", err)
	}
	query := `
		INSERT INTO subscriptions (user_id, feed_url, seq)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, feed_url) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, s.q(query), userID, feedURL, next); err != nil {
		return nil, storageErr("insert subscription", err)
	}

	subs, err := s.subscriptions(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, storageErr("commit subscribe", err)
	}
	return subs, nil
}
