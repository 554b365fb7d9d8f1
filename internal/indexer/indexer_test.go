package indexer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trivora/trivora/internal/indexer"
)

func TestPing(t *testing.T) {
	var gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.Query().Get("url")
	}))
	defer srv.Close()

	n := indexer.New(srv.URL, 5*time.Second)
	require.NoError(t, n.Ping(context.Background(), "https://blog.example.com/post/42"))
	assert.Equal(t, "https://blog.example.com/post/42", gotURL)
}

func TestPing_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "go away", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	n := indexer.New(srv.URL, 5*time.Second)
	assert.Error(t, n.Ping(context.Background(), "https://blog.example.com/post/42"))
}

func TestNilNotifierIsSafe(t *testing.T) {
	n := indexer.New("", time.Second)
	require.Nil(t, n)

	// Both paths must be no-ops on a nil notifier.
	assert.NoError(t, n.Ping(context.Background(), "https://blog.example.com/post/1"))
	n.NotifyAsync("https://blog.example.com/post/1")
}
