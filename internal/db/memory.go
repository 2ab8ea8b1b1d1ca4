package db

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"pods/internal/models"
)

// MemoryStore keeps users and podcasts in maps. Nothing survives a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]*models.User
	podcasts map[string]models.PodcastChannel
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uuid.UUID]*models.User),
		podcasts: make(map[string]models.PodcastChannel),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, name string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	for s.users[id] != nil {
		id = uuid.New()
	}
	u := &models.User{ID: id, Name: name, Subscribed: []string{}}
	s.users[id] = u
	return copyUser(u), nil
}

func (s *MemoryStore) GetUser(_ context.Context, id uuid.UUID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryStore) GetPodcast(_ context.Context, feedURL string) (models.PodcastChannel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.podcasts[feedURL]
	if !ok {
		return models.PodcastChannel{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) CreatePodcast(_ context.Context, feedURL, title, description string) (models.PodcastChannel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.podcasts[feedURL]; ok {
		return models.PodcastChannel{}, ErrAlreadyExists
	}
	p := models.PodcastChannel{
		ID:          uuid.New(),
		Name:        title,
		Description: description,
		FeedURL:     feedURL,
	}
	s.podcasts[feedURL] = p
	return p, nil
}

func (s *MemoryStore) Subscribe(_ context.Context, userID uuid.UUID, feedURL string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.podcasts[feedURL]; !ok {
		return nil, ErrNotFound
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	if !u.HasSubscription(feedURL) {
		u.Subscribed = append(u.Subscribed, feedURL)
	}
	return slices.Clone(u.Subscribed), nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func copyUser(u *models.User) models.User {
	c := *u
	c.Subscribed = slices.Clone(u.Subscribed)
	if c.Subscribed == nil {
		c.Subscribed = []string{}
	}
	return c
}
