// Package fetch is the client for the upstream occurrence API. It is the
// only place that talks HTTP to the backend; everything it hands out is a
// fully-decoded, normalized value.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/prontabot/occ-dashboard/internal/models"
	"github.com/prontabot/occ-dashboard/internal/snapshot"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetry   time.Duration
}

func NewClient(baseURL string, timeout, maxRetry time.Duration) *Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout, Transport: tr},
		maxRetry:   maxRetry,
	}
}

// Occurrences fetches /occs, scoped by interval when non-empty.
func (c *Client) Occurrences(ctx context.Context, interval string) ([]models.Occurrence, error) {
	path := "/occs"
	if interval != "" {
		path += "?interval=" + url.QueryEscape(interval)
	}
	var occs []models.Occurrence
	if err := c.getJSON(ctx, path, &occs); err != nil {
		return nil, fmt.Errorf("fetching occurrences: %w", err)
	}
	return occs, nil
}

// Locations fetches /locations.
func (c *Client) Locations(ctx context.Context) ([]models.Location, error) {
	var locs []models.Location
	if err := c.getJSON(ctx, "/locations", &locs); err != nil {
		return nil, fmt.Errorf("fetching locations: %w", err)
	}
	return locs, nil
}

// Users fetches /users and normalizes its two wire shapes: a bare integer is
// the active-user count, an array of presence records counts as its length
// (the raw array is returned alongside so it can be re-served).
func (c *Client) Users(ctx context.Context) (int, []models.UserPresence, error) {
	body, err := c.get(ctx, "/users")
	if err != nil {
		return 0, nil, fmt.Errorf("fetching users: %w", err)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var presences []models.UserPresence
		if err := json.Unmarshal(trimmed, &presences); err != nil {
			return 0, nil, fmt.Errorf("decoding user presences: %w", err)
		}
		return len(presences), presences, nil
	}
	var count int
	if err := json.Unmarshal(trimmed, &count); err != nil {
		return 0, nil, fmt.Errorf("decoding user count: %w", err)
	}
	return count, nil, nil
}

// Fetch retrieves occurrences, locations and users as one unit. Any failure
// discards the partial result, so a caller never installs a half-updated
// snapshot.
func (c *Client) Fetch(ctx context.Context, interval string) (*snapshot.Snapshot, error) {
	occs, err := c.Occurrences(ctx, interval)
	if err != nil {
		return nil, err
	}
	locs, err := c.Locations(ctx)
	if err != nil {
		return nil, err
	}
	users, presences, err := c.Users(ctx)
	if err != nil {
		return nil, err
	}
	return &snapshot.Snapshot{
		Occurrences: occs,
		Locations:   locs,
		ActiveUsers: users,
		Presences:   presences,
		Interval:    interval,
		FetchedAt:   time.Now(),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// get performs a GET with exponential-backoff retries. Client errors (4xx)
// are permanent and not retried.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	var body []byte

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("error creating request: %w", err))
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("error while doing request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("error reading resp.Body: %w", err)
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.maxRetry
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}
