// Package service owns the shared application state: the store, the feed
// resolver and the single login session. Every operation runs under one
// mutex, so effects are applied in the order callers acquire it.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"pods/internal/db"
	"pods/internal/models"
)

// ErrUnauthorized is returned when subscribing without a logged-in user.
var ErrUnauthorized = errors.New("no user logged in")

// PodcastResolver returns the stored podcast for a feed URL, creating it on
// first use.
type PodcastResolver interface {
	Resolve(ctx context.Context, feedURL string) (models.PodcastChannel, error)
}

type Service struct {
	mu       sync.Mutex
	db       db.DB
	resolver PodcastResolver
	current  *uuid.UUID
	log      logrus.FieldLogger
}

func New(store db.DB, resolver PodcastResolver, log logrus.FieldLogger) *Service {
	return &Service{db: store, resolver: resolver, log: log}
}

func (s *Service) CreateUser(ctx context.Context, name string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.db.CreateUser(ctx, name)
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	s.log.WithField("user", u.ID).Info("user created")
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.GetUser(ctx, id)
}

// Login makes id the current user. An unknown id logs the session out.
func (s *Service) Login(ctx context.Context, id uuid.UUID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.db.GetUser(ctx, id)
	if err != nil {
		s.current = nil
		return models.User{}, err
	}
	s.current = &u.ID
	s.log.WithField("user", u.ID).Info("user logged in")
	return u, nil
}

func (s *Service) Status() models.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.SessionStatus{}
	}
	id := *s.current
	return models.SessionStatus{User: &id, LoggedIn: true}
}

// Subscribe resolves feedURL, fetching it if it is new, and adds it to the
// current user's subscriptions.
func (s *Service) Subscribe(ctx context.Context, feedURL string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrUnauthorized
	}
	userID := *s.current

	p, err := s.resolver.Resolve(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	subs, err := s.db.Subscribe(ctx, userID, p.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", p.FeedURL, err)
	}
	s.log.WithFields(logrus.Fields{"user": userID, "feed": p.FeedURL}).Info("subscribed")
	return subs, nil
}

// UserFeed returns a user with the podcasts they follow, in subscription order.
func (s *Service) UserFeed(ctx context.Context, id uuid.UUID) (models.User, []models.PodcastChannel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.db.GetUser(ctx, id)
	if err != nil {
		return models.User{}, nil, err
	}
	podcasts := make([]models.PodcastChannel, 0, len(u.Subscribed))
	for _, url := range u.Subscribed {
		p, err := s.db.GetPodcast(ctx, url)
		if err != nil {
			return models.User{}, nil, fmt.Errorf("podcast %s: %w", url, err)
		}
		podcasts = append(podcasts, p)
	}
	return u, podcasts, nil
}
