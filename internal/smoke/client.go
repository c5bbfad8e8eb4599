package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Client is a small REST client for the catalog.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Health checks that /healthz answers 200.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, http.StatusOK, nil)
}

// Count returns the catalog size.
func (c *Client) Count(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, http.MethodGet, "/movies/count", nil, http.StatusOK, &out)
	return out.Count, err
}

// Add appends a movie.
func (c *Client) Add(ctx context.Context, m Movie) (Movie, error) {
	var out Movie
	err := c.do(ctx, http.MethodPost, "/movies", m, http.StatusCreated, &out)
	return out, err
}

// ByGenre lists the movies of one genre.
func (c *Client) ByGenre(ctx context.Context, genre string) ([]Movie, error) {
	var out []Movie
	err := c.do(ctx, http.MethodGet, "/movies?genre="+genre, nil, http.StatusOK, &out)
	return out, err
}

// Delete removes the movie at index.
func (c *Client) Delete(ctx context.Context, index int) (Movie, error) {
	var out Movie
	err := c.do(ctx, http.MethodDelete, "/movies/"+strconv.Itoa(index), nil, http.StatusOK, &out)
	return out, err
}

// Roll rolls a die.
func (c *Client) Roll(ctx context.Context, sides, rolls int) (DieRoll, error) {
	var out DieRoll
	path := "/roll?sides=" + strconv.Itoa(sides) + "&rolls=" + strconv.Itoa(rolls)
	err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != want {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: %w: %d %s", method, path, ErrUnexpectedStatus, resp.StatusCode, bytes.TrimSpace(msg))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}
