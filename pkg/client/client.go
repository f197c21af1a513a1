// Package client is the Go counterpart of the SPA's data service: a thin
// wrapper over the persons API that normalizes transport failures into
// user-facing messages.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"personaldata-backend/pkg/agecalc"
)

// Person mirrors the API's person representation.
type Person struct {
	ID        int        `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	FullName  string     `json:"fullName"`
	Address   string     `json:"address"`
	BirthDate string     `json:"birthDate"`
	Age       int        `json:"age"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// PersonPage is one page of records plus paging metadata.
type PersonPage struct {
	Data            []Person `json:"data"`
	TotalCount      int      `json:"totalCount"`
	PageNumber      int      `json:"pageNumber"`
	PageSize        int      `json:"pageSize"`
	TotalPages      int      `json:"totalPages"`
	HasPreviousPage bool     `json:"hasPreviousPage"`
	HasNextPage     bool     `json:"hasNextPage"`
}

// PersonRequest carries the writable fields for create and update.
type PersonRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	BirthDate string `json:"birthDate"` // YYYY-MM-DD
}

// ListOptions control the list/search call. Zero values fall back to the
// server defaults (page 1, size 10).
type ListOptions struct {
	PageNumber int
	PageSize   int
	Search     string
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

// APIError is any non-success outcome, transport failures included.
// Message is always safe to show to a user.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether the server answered 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the given API root, e.g.
// "http://localhost:8080/api/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPersons fetches one page of records.
func (c *Client) ListPersons(ctx context.Context, opts ListOptions) (*PersonPage, error) {
	q := url.Values{}
	if opts.PageNumber > 0 {
		q.Set("pageNumber", strconv.Itoa(opts.PageNumber))
	}
	if opts.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	if s := strings.TrimSpace(opts.Search); s != "" {
		q.Set("search", s)
	}

	endpoint := c.baseURL + "/persons"
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var page PersonPage
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreatePerson submits a new record and returns it as stored.
func (c *Client) CreatePerson(ctx context.Context, req PersonRequest) (*Person, error) {
	var p Person
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/persons", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePerson replaces the record with the given id.
func (c *Client) UpdatePerson(ctx context.Context, id int, req PersonRequest) (*Person, error) {
	var p Person
	endpoint := fmt.Sprintf("%s/persons/%d", c.baseURL, id)
	if err := c.do(ctx, http.MethodPut, endpoint, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// AgeAt exposes the shared age computation for display use, so the UI side
// and the server can never drift.
func (c *Client) AgeAt(birthDate string, today time.Time) (int, error) {
	t, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return 0, fmt.Errorf("invalid birth date %q: %w", birthDate, err)
	}
	return agecalc.At(t, today), nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, dest interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{
			Message: "Unable to reach the server",
			Errors:  []string{err.Error()},
		}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Server error: %d", resp.StatusCode),
			Errors:     []string{err.Error()},
		}
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("Server error: %d", resp.StatusCode)
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Errors:     env.Errors,
		}
	}

	if dest != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return &APIError{
				StatusCode: resp.StatusCode,
				Message:    "Unexpected response payload",
				Errors:     []string{err.Error()},
			}
		}
	}

	return nil
}
