// Package apiclient implements domain.TodoAPI over the REST interface.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/runoshun/brutal/internal/domain"
)

// maxErrorBody bounds how much of a failed response is kept in StatusError.
const maxErrorBody = 512

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Body   string
	Code   int
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Code)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is maps 404 to domain.ErrTodoNotFound.
func (e *StatusError) Is(target error) bool {
	return target == domain.ErrTodoNotFound && e.Code == http.StatusNotFound
}

// Client talks to the todos endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each round trip. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		endpoint:   strings.TrimRight(baseURL, "/") + domain.TodosPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the collection URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// List returns every todo.
func (c *Client) List(ctx context.Context) ([]domain.Todo, error) {
	var todos []domain.Todo
	if err := c.do(ctx, http.MethodGet, c.endpoint, nil, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	return todos, nil
}

// Create posts a new todo.
func (c *Client) Create(ctx context.Context, text string) (domain.Todo, error) {
	var todo domain.Todo
	body := struct {
		Text string `json:"text"`
	}{Text: text}
	if err := c.do(ctx, http.MethodPost, c.endpoint, body, &todo); err != nil {
		return domain.Todo{}, err
	}
	if err := checkRecord(http.MethodPost, c.endpoint, todo); err != nil {
		return domain.Todo{}, err
	}
	return todo, nil
}

// Update puts patch to the todo.
func (c *Client) Update(ctx context.Context, id int, patch domain.TodoPatch) (domain.Todo, error) {
	var todo domain.Todo
	url := c.itemURL(id)
	if err := c.do(ctx, http.MethodPut, url, patch, &todo); err != nil {
		return domain.Todo{}, err
	}
	if err := checkRecord(http.MethodPut, url, todo); err != nil {
		return domain.Todo{}, err
	}
	if todo.ID != id {
		return domain.Todo{}, fmt.Errorf("decode %s %s: id %d does not match: %w", http.MethodPut, url, todo.ID, domain.ErrInvalidResponse)
	}
	return todo, nil
}

// Delete removes the todo. Any response body is ignored.
func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
}

// checkRecord rejects a decoded todo that lacks an id or text,
// e.g. from a `null` or `{}` body.
func checkRecord(method, url string, todo domain.Todo) error {
	switch {
	case todo.ID <= 0:
		return fmt.Errorf("decode %s %s: missing id: %w", method, url, domain.ErrInvalidResponse)
	case todo.Text == "":
		return fmt.Errorf("decode %s %s: missing text: %w", method, url, domain.ErrInvalidResponse)
	}
	return nil
}

func (c *Client) itemURL(id int) string {
	return c.endpoint + "/" + strconv.Itoa(id)
}

// do performs one round trip. in is JSON-encoded when non-nil; out is
// decoded from a 2xx body when non-nil.
func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method: method,
			URL:    url,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("decode %s %s: empty response body", method, url)
		}
		return fmt.Errorf("decode %s %s: %w", method, url, err)
	}
	return nil
}

// Ensure Client implements domain.TodoAPI.
var _ domain.TodoAPI = (*Client)(nil)
