// Package client is a typed HTTP client for the CivicLens API. It is the
// network layer behind the browse and mapview packages.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNoSession is returned by operations that require a verified identity
// when the client has none. No network call is made in that case.
var ErrNoSession = errors.New("not logged in")

// Issue mirrors the server's issue record.
type Issue struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Lat         *float64  `json:"lat,omitempty"`
	Lng         *float64  `json:"lng,omitempty"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Upvotes     int64     `json:"upvotes"`
	Ward        string    `json:"ward,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateIssue is the creation payload for POST /issues.
type CreateIssue struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	PhotoURL    string   `json:"photoUrl,omitempty"`
	Ward        string   `json:"ward,omitempty"`
}

// Analytics is the payload of GET /issues/analytics.
type Analytics struct {
	Total    int64 `json:"total"`
	Open     int64 `json:"open"`
	Resolved int64 `json:"resolved"`
}

// ListParams narrows GET /issues.
type ListParams struct {
	Ward  string
	Page  int
	Limit int
	Sort  string
}

// Client talks to one CivicLens deployment. A nil Session leaves the client
// anonymous; read endpoints still work.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	session    *Session
}

func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSession attaches a verified identity to the client.
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

// SetSession swaps the active session; nil logs out.
func (c *Client) SetSession(s *Session) {
	c.session = s
}

// Session returns the active session, nil when anonymous.
func (c *Client) Session() *Session {
	return c.session
}

// ListIssues fetches one page of issues. The server answers with
// {items: [...]}, but older deployments returned a bare array; both are
// accepted.
func (c *Client) ListIssues(ctx context.Context, p ListParams) ([]Issue, error) {
	q := url.Values{}
	if p.Ward != "" {
		q.Set("ward", p.Ward)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}

	endpoint := c.baseURL + "/issues"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	return decodeIssueList(body)
}

// CreateIssueReport submits a new issue and returns the created record.
func (c *Client) CreateIssueReport(ctx context.Context, issue CreateIssue) (*Issue, error) {
	payload, err := json.Marshal(issue)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/issues", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp, "failed to create issue")
	}

	var created Issue
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Upvote increments an issue's upvote counter. It requires a session and
// returns the server-authoritative count, never a locally computed one, so
// concurrent upvotes by other viewers cannot drift the display.
func (c *Client) Upvote(ctx context.Context, issueID string) (int64, error) {
	if c.session == nil {
		return 0, ErrNoSession
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/issues/"+url.PathEscape(issueID)+"/upvote", nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.session.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, apiError(resp, "failed to upvote issue")
	}

	var result struct {
		Upvotes int64 `json:"upvotes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}
	return result.Upvotes, nil
}

// Analytics fetches aggregate issue counts.
func (c *Client) Analytics(ctx context.Context) (*Analytics, error) {
	body, err := c.get(ctx, c.baseURL+"/issues/analytics")
	if err != nil {
		return nil, err
	}

	var a Analytics
	if err := json.Unmarshal(body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Divisions fetches the ward boundary GeoJSON, undecoded.
func (c *Client) Divisions(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, c.baseURL+"/geo/divisions")
}

// WardZones fetches the ward id to name mapping.
func (c *Client) WardZones(ctx context.Context) (map[string]string, error) {
	body, err := c.get(ctx, c.baseURL+"/geo/ward-zones")
	if err != nil {
		return nil, err
	}

	var zones map[string]string
	if err := json.Unmarshal(body, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// VerifyGoogleToken exchanges a Google token for a session via the server.
func (c *Client) VerifyGoogleToken(ctx context.Context, token string) (*Session, error) {
	payload, _ := json.Marshal(map[string]string{"token": token})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/google/verify", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp, "token verification failed")
	}

	var result struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &Session{
		ID:    result.User.ID,
		Email: result.User.Email,
		Name:  result.User.Name,
		Token: token,
	}, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp, "request failed")
	}

	return io.ReadAll(resp.Body)
}

// decodeIssueList accepts both {items: [...]} and a bare array.
func decodeIssueList(body []byte) ([]Issue, error) {
	var wrapped struct {
		Items []Issue `json:"items"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Items != nil {
		return wrapped.Items, nil
	}

	var bare []Issue
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("unexpected issue list shape: %w", err)
	}
	return bare, nil
}

// apiError surfaces the server-provided {error} message, falling back to a
// generic one when the body has none.
func apiError(resp *http.Response, fallback string) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return errors.New(body.Error)
	}
	return fmt.Errorf("%s (status %d)", fallback, resp.StatusCode)
}
