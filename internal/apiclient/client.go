// Package apiclient is the HTTP client for the content-operations
// dashboard API.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/creatorops/opsfeed/internal/log"
	"github.com/creatorops/opsfeed/internal/model"
)

// ErrRateLimited is returned when the dashboard API throttles us
var ErrRateLimited = errors.New("dashboard API rate limit exceeded")

// DefaultBaseURL is the production dashboard API endpoint
const DefaultBaseURL = "https://api.creatorops.example.com"

const requestTimeout = 30 * time.Second

// Fetcher is the record-fetching surface of the client. The service
// layer depends on this interface so tests can substitute a fake.
type Fetcher interface {
	ListCustomRequests(ctx context.Context, statuses []model.CustomStatus, submittedAfter time.Time) ([]model.CustomRequest, error)
	ListSceneAssignments(ctx context.Context, status model.SceneStatus) ([]model.SceneAssignment, error)
}

var _ Fetcher = (*Client)(nil)

// throttleTransport surfaces dashboard throttling as ErrRateLimited so
// callers can degrade to cached data instead of failing the feed.
type throttleTransport struct {
	base http.RoundTripper
}

func (t *throttleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		if retry := resp.Header.Get("Retry-After"); retry != "" {
			log.Debug("rate limited by dashboard API", "retryAfter", retry)
		}
		_ = resp.Body.Close()
		return nil, ErrRateLimited
	}

	return resp, nil
}

// Client talks to the dashboard API with a bearer token.
type Client struct {
	http    *http.Client
	baseURL string
	team    string
}

// NewClient builds a dashboard API client. An empty token falls back to
// the OPSFEED_TOKEN environment variable; an empty baseURL falls back
// to the production endpoint.
func NewClient(ctx context.Context, token, baseURL, team string) (*Client, error) {
	if token == "" {
		token = os.Getenv("OPSFEED_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("dashboard API token not provided. Set the OPSFEED_TOKEN environment variable")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(ctx, ts)
	hc.Transport = &throttleTransport{base: hc.Transport}
	hc.Timeout = requestTimeout

	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(baseURL, "/"),
		team:    team,
	}, nil
}

// get performs a GET against the API and decodes the JSON response into out
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	log.Trace("dashboard API request", "url", u)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("dashboard API returned %d for %s: %s", resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// ListCustomRequests fetches custom requests filtered by status and
// submission time. An empty status list fetches every status; a zero
// submittedAfter fetches the API's full default window.
func (c *Client) ListCustomRequests(ctx context.Context, statuses []model.CustomStatus, submittedAfter time.Time) ([]model.CustomRequest, error) {
	query := url.Values{}
	for _, s := range statuses {
		query.Add("status", string(s))
	}
	if !submittedAfter.IsZero() {
		query.Set("submittedAfter", submittedAfter.UTC().Format(time.RFC3339))
	}
	if c.team != "" {
		query.Set("team", c.team)
	}

	var requests []model.CustomRequest
	if err := c.get(ctx, "/api/custom-requests", query, &requests); err != nil {
		return nil, fmt.Errorf("failed to list custom requests: %w", err)
	}

	log.Debug("fetched custom requests", "count", len(requests))
	return requests, nil
}

// ListSceneAssignments fetches scene assignments in the given status
func (c *Client) ListSceneAssignments(ctx context.Context, status model.SceneStatus) ([]model.SceneAssignment, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	if c.team != "" {
		query.Set("team", c.team)
	}

	var assignments []model.SceneAssignment
	if err := c.get(ctx, "/api/scene-assignments", query, &assignments); err != nil {
		return nil, fmt.Errorf("failed to list scene assignments: %w", err)
	}

	log.Debug("fetched scene assignments", "count", len(assignments))
	return assignments, nil
}
