package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/runoshun/brutal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the test server saw.
type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        string
}

func newTestServer(t *testing.T, status int, response string) (*Client, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.ContentType = r.Header.Get("Content-Type")
		rec.Body = string(body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", WithHTTPClient(srv.Client())), rec
}

func TestClient_List(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK,
		`[{"id":1,"text":"a","completed":false,"createdAt":"2025-01-15T09:30:00.000001"},
		  {"id":2,"text":"b","completed":true,"createdAt":"2025-01-16T10:00:00"}]`)

	todos, err := c.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.Method)
	assert.Equal(t, "/api/todos", rec.Path)
	require.Len(t, todos, 2)
	assert.Equal(t, 1, todos[0].ID)
	assert.Equal(t, "b", todos[1].Text)
	assert.True(t, todos[1].Completed)
	assert.Equal(t, 16, todos[1].CreatedAt.Day())
}

func TestClient_List_EmptyArray(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `[]`)

	todos, err := c.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)
}

func TestClient_Create(t *testing.T) {
	c, rec := newTestServer(t, http.StatusCreated,
		`{"id":4,"text":"Buy milk","completed":false,"createdAt":"2025-01-15T09:30:00"}`)

	todo, err := c.Create(context.Background(), "Buy milk")

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "application/json", rec.ContentType)
	assert.JSONEq(t, `{"text":"Buy milk"}`, rec.Body)
	assert.Equal(t, 4, todo.ID)
	assert.False(t, todo.Completed)
}

func TestClient_Update(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK,
		`{"id":2,"text":"b","completed":true,"createdAt":"2025-01-15T09:30:00"}`)
	done := true

	todo, err := c.Update(context.Background(), 2, domain.TodoPatch{Completed: &done})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.Method)
	assert.Equal(t, "/api/todos/2", rec.Path)
	assert.Equal(t, "application/json", rec.ContentType)
	assert.JSONEq(t, `{"completed":true}`, rec.Body)
	assert.True(t, todo.Completed)
}

func TestClient_Delete(t *testing.T) {
	c, rec := newTestServer(t, http.StatusNoContent, ``)

	err := c.Delete(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, rec.Method)
	assert.Equal(t, "/api/todos/7", rec.Path)
	assert.Empty(t, rec.ContentType)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	c, _ := newTestServer(t, http.StatusNotFound, `{"error":"Todo not found"}`)
	done := true

	_, err := c.Update(context.Background(), 9, domain.TodoPatch{Completed: &done})

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Contains(t, statusErr.Error(), "Todo not found")
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestClient_ServerError(t *testing.T) {
	c, _ := newTestServer(t, http.StatusInternalServerError, `boom`)

	_, err := c.List(context.Background())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.NotErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestClient_DecodeError(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `<html>not json</html>`)

	_, err := c.List(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestClient_MalformedRecord(t *testing.T) {
	done := true
	tests := []struct {
		call     func(*Client) (domain.Todo, error)
		name     string
		status   int
		response string
		wantMsg  string
	}{
		{
			name:     "create null body",
			status:   http.StatusCreated,
			response: `null`,
			call:     func(c *Client) (domain.Todo, error) { return c.Create(context.Background(), "Buy milk") },
			wantMsg:  "missing id",
		},
		{
			name:     "create empty object",
			status:   http.StatusCreated,
			response: `{}`,
			call:     func(c *Client) (domain.Todo, error) { return c.Create(context.Background(), "Buy milk") },
			wantMsg:  "missing id",
		},
		{
			name:     "create without text",
			status:   http.StatusCreated,
			response: `{"id":4,"completed":false}`,
			call:     func(c *Client) (domain.Todo, error) { return c.Create(context.Background(), "Buy milk") },
			wantMsg:  "missing text",
		},
		{
			name:     "update null body",
			status:   http.StatusOK,
			response: `null`,
			call: func(c *Client) (domain.Todo, error) {
				return c.Update(context.Background(), 2, domain.TodoPatch{Completed: &done})
			},
			wantMsg: "missing id",
		},
		{
			name:     "update other id",
			status:   http.StatusOK,
			response: `{"id":3,"text":"c","completed":true}`,
			call: func(c *Client) (domain.Todo, error) {
				return c.Update(context.Background(), 2, domain.TodoPatch{Completed: &done})
			},
			wantMsg: "does not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			c, _ := newTestServer(t, tt.status, tt.response)

			// Execute
			todo, err := tt.call(c)

			// Assert
			require.ErrorIs(t, err, domain.ErrInvalidResponse)
			assert.Contains(t, err.Error(), "decode")
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, domain.Todo{}, todo)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).List(context.Background())

	assert.Error(t, err)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := New(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.List(context.Background())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNew_Endpoint(t *testing.T) {
	assert.Equal(t, "http://localhost:5000/api/todos", New("http://localhost:5000").Endpoint())
	assert.Equal(t, "http://localhost:5000/api/todos", New("http://localhost:5000/").Endpoint())
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{Method: "GET", URL: "http://x/api/todos", Code: 502}
	assert.Equal(t, "GET http://x/api/todos: status 502", err.Error())

	data, _ := json.Marshal(map[string]string{"error": "x"})
	err.Body = string(data)
	assert.Contains(t, err.Error(), `{"error":"x"}`)
}
