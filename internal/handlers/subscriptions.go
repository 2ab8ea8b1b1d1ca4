package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

type subscribeRequest struct {
	RSS string `json:"rss"`
}

func (h *Handlers) PostSubscription(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	feedURL := strings.TrimSpace(req.RSS)
	if feedURL == "" {
		badRequest(w, "rss is required")
		return
	}
	if !validFeedURL(feedURL) {
		badRequest(w, "rss must be an absolute http(s) URL")
		return
	}

	subs, err := h.svc.Subscribe(r.Context(), feedURL)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, subs)
}

func validFeedURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
