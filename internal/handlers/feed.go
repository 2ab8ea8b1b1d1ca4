package handlers

import (
	"fmt"
	"net/http"

	"pods/internal/feed"
)

func (h *Handlers) getBaseURL(r *http.Request) string {
	if h.baseURL != "" {
		return h.baseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// GetUserFeed serves the user's subscriptions as an RSS document.
func (h *Handlers) GetUserFeed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid user id")
		return
	}

	user, podcasts, err := h.svc.UserFeed(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	rss, err := feed.GenerateRSS(user, podcasts, h.getBaseURL(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml")
	w.Write([]byte(rss))
}
