package test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/eduncan911/podcast"
	"github.com/jmoiron/sqlx"
)

// NewMockDB returns a sqlx handle backed by sqlmock. The driver name is
// "postgres" so queries are rebound to $N placeholders.
func NewMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	sqlxDB := sqlx.NewDb(mockDb, "postgres")
	t.Cleanup(func() {
		mockDb.Close()
	})
	return sqlxDB, mock
}

// FeedXML renders a minimal RSS document for a channel.
func FeedXML(title, description string) []byte {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := podcast.New(title, "https://example.com", description, &now, &now)
	return p.Bytes()
}

// FeedServer serves a fixed body and counts the requests it receives.
type FeedServer struct {
	*httptest.Server
	hits atomic.Int32
}

// NewFeedServer starts a server answering every request with status and body.
func NewFeedServer(t *testing.T, status int, body []byte) *FeedServer {
	fs := &FeedServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.hits.Add(1)
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(fs.Close)
	return fs
}

// Hits returns how many requests the server has answered.
func (fs *FeedServer) Hits() int {
	return int(fs.hits.Load())
}
