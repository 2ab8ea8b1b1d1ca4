package models

import "github.com/google/uuid"

// PodcastChannel is a podcast known by its RSS feed URL.
type PodcastChannel struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	FeedURL     string    `json:"rss" db:"feed_url"`
}
