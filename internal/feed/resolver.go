package feed

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"pods/internal/db"
	"pods/internal/models"
)

// PodcastStore is the part of db.DB the resolver needs.
type PodcastStore interface {
	GetPodcast(ctx context.Context, feedURL string) (models.PodcastChannel, error)
	CreatePodcast(ctx context.Context, feedURL, title, description string) (models.PodcastChannel, error)
}

// Resolver turns a feed URL into a stored podcast, downloading the feed
// only the first time the URL is seen.
//
// Resolve checks and then creates. That is safe under the service lock;
// without it two callers may both fetch, and the loser of CreatePodcast
// falls back to the stored record.
type Resolver struct {
	store   PodcastStore
	fetcher Fetcher
	log     logrus.FieldLogger
}

func NewResolver(store PodcastStore, fetcher Fetcher, log logrus.FieldLogger) *Resolver {
	return &Resolver{store: store, fetcher: fetcher, log: log}
}

func (r *Resolver) Resolve(ctx context.Context, feedURL string) (models.PodcastChannel, error) {
	p, err := r.store.GetPodcast(ctx, feedURL)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return models.PodcastChannel{}, err
	}

	log := r.log.WithField("feed", feedURL)
	log.Info("fetching unknown feed")

	body, err := r.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		log.WithError(err).Warn("failed to fetch feed")
		return models.PodcastChannel{}, err
	}
	ch, err := Parse(body)
	if err != nil {
		log.WithError(err).Warn("failed to parse feed")
		return models.PodcastChannel{}, err
	}

	p, err = r.store.CreatePodcast(ctx, feedURL, ch.Title, ch.Description)
	if errors.Is(err, db.ErrAlreadyExists) {
		return r.store.GetPodcast(ctx, feedURL)
	}
	if err != nil {
		return models.PodcastChannel{}, err
	}
	log.WithField("podcast", p.ID).Infof("added podcast %q", p.Name)
	return p, nil
}
