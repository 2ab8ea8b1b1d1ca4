package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContract runs the behaviour every DB implementation must share.
func testContract(t *testing.T, newStore func(t *testing.T) DB) {
	ctx := context.Background()

	t.Run("create and get user", func(t *testing.T) {
		s := newStore(t)
		seen := map[uuid.UUID]bool{}
		for _, name := range []string{"Ada", "Ada", "Grace", ""} {
			u, err := s.CreateUser(ctx, name)
			require.NoError(t, err)
			assert.False(t, seen[u.ID], "id reused")
			seen[u.ID] = true
			assert.Equal(t, name, u.Name)
			assert.Empty(t, u.Subscribed)

			got, err := s.GetUser(ctx, u.ID)
			require.NoError(t, err)
			assert.Equal(t, u, got)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetUser(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("podcast keyed by feed url", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetPodcast(ctx, "https://example.com/feed.xml")
		assert.ErrorIs(t, err, ErrNotFound)

		p, err := s.CreatePodcast(ctx, "https://example.com/feed.xml", "Example Cast", "A show.")
		require.NoError(t, err)
		assert.Equal(t, "Example Cast", p.Name)
		assert.Equal(t, "A show.", p.Description)
		assert.Equal(t, "https://example.com/feed.xml", p.FeedURL)

		got, err := s.GetPodcast(ctx, "https://example.com/feed.xml")
		require.NoError(t, err)
		assert.Equal(t, p, got)
	})

	t.Run("create podcast twice keeps the first record", func(t *testing.T) {
		s := newStore(t)
		first, err := s.CreatePodcast(ctx, "https://example.com/feed.xml", "Example Cast", "A show.")
		require.NoError(t, err)

		_, err = s.CreatePodcast(ctx, "https://example.com/feed.xml", "Other", "Other show.")
		assert.ErrorIs(t, err, ErrAlreadyExists)

		got, err := s.GetPodcast(ctx, "https://example.com/feed.xml")
		require.NoError(t, err)
		assert.Equal(t, first, got)
	})

	t.Run("subscribe deduplicates and keeps order", func(t *testing.T) {
		s := newStore(t)
		u, err := s.CreateUser(ctx, "Ada")
		require.NoError(t, err)
		for _, url := range []string{"https://a.example/rss", "https://b.example/rss"} {
			_, err := s.CreatePodcast(ctx, url, "title", "description")
			require.NoError(t, err)
		}

		subs, err := s.Subscribe(ctx, u.ID, "https://b.example/rss")
		require.NoError(t, err)
		assert.Equal(t, []string{"https://b.example/rss"}, subs)

		subs, err = s.Subscribe(ctx, u.ID, "https://a.example/rss")
		require.NoError(t, err)
		assert.Equal(t, []string{"https://b.example/rss", "https://a.example/rss"}, subs)

		subs, err = s.Subscribe(ctx, u.ID, "https://b.example/rss")
		require.NoError(t, err)
		assert.Equal(t, []string{"https://b.example/rss", "https://a.example/rss"}, subs)

		got, err := s.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, subs, got.Subscribed)
	})

	t.Run("subscribe to unknown podcast", func(t *testing.T) {
		s := newStore(t)
		u, err := s.CreateUser(ctx, "Ada")
		require.NoError(t, err)

		_, err = s.Subscribe(ctx, u.ID, "https://missing.example/rss")
		assert.ErrorIs(t, err, ErrNotFound)

		got, err := s.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Subscribed)
	})

	t.Run("subscribe unknown user", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreatePodcast(ctx, "https://a.example/rss", "title", "description")
		require.NoError(t, err)

		_, err = s.Subscribe(ctx, uuid.New(), "https://a.example/rss")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
