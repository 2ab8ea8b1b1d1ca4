package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"pods/internal/models"
)

func (s *SQLStore) CreateUser(ctx context.Context, name string) (models.User, error) {
	user := models.User{ID: uuid.New(), Name: name, Subscribed: []string{}}
	_, err := s.db.ExecContext(ctx, s.q(`INSERT INTO users (id, name) VALUES (?, ?)`), user.ID, user.Name)
	if err != nil {
		return models.User{}, storageErr("insert user", err)
	}
	return user, nil
}

func (s *SQLStore) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	user := models.User{}
	err := s.db.GetContext(ctx, &user, s.q(`SELECT id, name FROM users WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, storageErr("get user", err)
	}

	user.Subscribed, err = s.subscriptions(ctx, s.db, id)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *SQLStore) subscriptions(ctx context.Context, q sqlx.QueryerContext, userID uuid.UUID) ([]string, error) {
	subs := []string{}
	err := sqlx.SelectContext(ctx, q, &subs, s.q(`SELECT feed_url FROM subscriptions WHERE user_id = ? ORDER BY seq`), userID)
	if err != nil {
		return nil, storageErr("list subscriptions", err)
	}
	return subs, nil
}
