package models

import "github.com/google/uuid"

// User represents a registered user and the feeds they follow.
type User struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Subscribed []string  `json:"subscribed" db:"-"`
}

// HasSubscription reports whether feedURL is already in the user's set.
func (u User) HasSubscription(feedURL string) bool {
	for _, s := range u.Subscribed {
		if s == feedURL {
			return true
		}
	}
	return false
}
