package feed

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pods/internal/test"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	body := test.FeedXML("Example Cast", "A show.")
	srv := test.NewFeedServer(t, http.StatusOK, body)

	got, err := NewHTTPFetcher(5*time.Second).Fetch(context.Background(), srv.URL+"/feed.xml")
	require.NoError(t, err)
	assert.Equal(t, body, got)
	assert.Equal(t, 1, srv.Hits())
}

func TestHTTPFetcher_BadStatus(t *testing.T) {
	srv := test.NewFeedServer(t, http.StatusNotFound, []byte("not here"))

	_, err := NewHTTPFetcher(5*time.Second).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestHTTPFetcher_Unreachable(t *testing.T) {
	srv := test.NewFeedServer(t, http.StatusOK, nil)
	url := srv.URL
	srv.Close()

	_, err := NewHTTPFetcher(time.Second).Fetch(context.Background(), url)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestHTTPFetcher_TooLarge(t *testing.T) {
	body := test.FeedXML("Example Cast", "A show.")
	srv := test.NewFeedServer(t, http.StatusOK, body)

	f := NewHTTPFetcher(5 * time.Second)
	f.maxSize = int64(len(body)) - 1
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrFetch)
	assert.NotErrorIs(t, err, ErrParse)

	f.maxSize = int64(len(body))
	got, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}
