package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"pods/internal/models"
)

func (s *SQLStore) GetPodcast(ctx context.Context, feedURL string) (models.PodcastChannel, error) {
	podcast := models.PodcastChannel{}
	err := s.db.GetContext(ctx, &podcast, s.q(`SELECT id, name, description, feed_url FROM podcasts WHERE feed_url = ?`), feedURL)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PodcastChannel{}, ErrNotFound
	}
	if err != nil {
		return models.PodcastChannel{}, storageErr("get podcast", err)
	}
	return podcast, nil
}

func (s *SQLStore) CreatePodcast(ctx context.Context, feedURL, title, description string) (models.PodcastChannel, error) {
	podcast := models.PodcastChannel{
		ID:          uuid.New(),
		Name:        title,
		Description: description,
		FeedURL:     feedURL,
	}
	query := `
		INSERT INTO podcasts (id, feed_url, name, description)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (feed_url) DO NOTHING
	`
	res, err := s.db.ExecContext(ctx, s.q(query), podcast.ID, podcast.FeedURL, podcast.Name, podcast.Description)
	if err != nil {
		return models.PodcastChannel{}, storageErr("insert podcast", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.PodcastChannel{}, storageErr("insert podcast", err)
	}
	if n == 0 {
		return models.PodcastChannel{}, ErrAlreadyExists
	}
	return podcast, nil
}
