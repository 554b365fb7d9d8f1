// Package indexer asks a search engine to crawl newly published URLs.
// The ping is best-effort: it runs after the post is committed and its
// failure never reaches the publishing request.
package indexer

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

type Notifier struct {
	pingURL string
	timeout time.Duration
	client  *http.Client
}

// New returns a Notifier, or nil when no ping endpoint is configured.
// A nil Notifier is safe to use and does nothing.
func New(pingURL string, timeout time.Duration) *Notifier {
	if pingURL == "" {
		return nil
	}
	return &Notifier{
		pingURL: pingURL,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// NotifyAsync fires the ping in its own goroutine. Errors are logged
// and swallowed.
func (n *Notifier) NotifyAsync(postURL string) {
	if n == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.Ping(ctx, postURL); err != nil {
			log.Printf("indexing ping for %s failed: %v", postURL, err)
		}
	}()
}

// Ping performs one synchronous notification round trip.
func (n *Notifier) Ping(ctx context.Context, postURL string) error {
	if n == nil {
		return nil
	}

	u, err := url.Parse(n.pingURL)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("url", postURL)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("indexing endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
