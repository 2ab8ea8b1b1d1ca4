package feed

import (
	"fmt"
	"time"

	"github.com/eduncan911/podcast"
	"pods/internal/models"
)

// GenerateRSS renders the podcasts a user follows as an RSS document, one
// item per subscription.
func GenerateRSS(user models.User, podcasts []models.PodcastChannel, baseURL string) (string, error) {
	now := time.Now()
	name := user.Name
	if name == "" {
		name = user.ID.String()
	}

	p := podcast.New(
		fmt.Sprintf("%s's Subscriptions", name),
		fmt.Sprintf("%s/users/%s/rss", baseURL, user.ID),
		fmt.Sprintf("Podcasts followed by %s.", name),
		&now, &now,
	)

	for _, pc := range podcasts {
		item := podcast.Item{
			Title:       pc.Name,
			Link:        pc.FeedURL,
			GUID:        pc.ID.String(),
			Description: pc.Description,
			PubDate:     &now,
		}
		if _, err := p.AddItem(item); err != nil {
			return "", fmt.Errorf("add %s to feed: %w", pc.FeedURL, err)
		}
	}

	return p.String(), nil
}
