// Package apiclient is a thin Go client for the todo service, used by the
// terminal client and the seed tool.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ErlanBelekov/todo-service/internal/domain"
)

type Client struct {
	base  string
	token string
	http  *http.Client
}

// New returns a client for the service at base (e.g. http://localhost:8080).
// token may be empty; it is required for everything except Login.
func New(base, token string) *Client {
	return &Client{
		base:  base,
		token: token,
		http:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Login exchanges credentials for a bearer token. The token is returned,
// not retained; callers decide where to keep it.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, http.StatusOK, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) List(ctx context.Context) ([]*domain.Todo, error) {
	var todos []*domain.Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, http.StatusOK, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) Create(ctx context.Context, text, priority, dueDate string) (*domain.Todo, error) {
	body, _ := json.Marshal(map[string]string{
		"text":     text,
		"priority": priority,
		"dueDate":  dueDate,
	})

	var todo domain.Todo
	if err := c.do(ctx, http.MethodPost, "/todos", body, http.StatusCreated, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdatePatch mirrors the service's partial-update body: nil fields are
// omitted from the request and keep their stored value.
type UpdatePatch struct {
	Text      *string `json:"text,omitempty"`
	Priority  *string `json:"priority,omitempty"`
	DueDate   *string `json:"dueDate,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func (c *Client) Update(ctx context.Context, id int64, patch UpdatePatch) (*domain.Todo, error) {
	body, _ := json.Marshal(patch)

	var todo domain.Todo
	if err := c.do(ctx, http.MethodPut, "/todos?id="+strconv.FormatInt(id, 10), body, http.StatusOK, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/todos?id="+strconv.FormatInt(id, 10), nil, http.StatusOK, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, wantStatus int, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if resp.Request.URL.Path == "/auth/login" {
			return domain.ErrInvalidCredentials
		}
		return domain.ErrTokenInvalid
	case http.StatusNotFound:
		return domain.ErrTodoNotFound
	}

	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}
