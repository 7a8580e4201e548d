// Package apiclient is a thin wrapper over the remote content API: one
// method per endpoint, bearer auth from the session's stored token, and an
// error for every non-2xx answer. It never retries or caches.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// TokenSource supplies the access token to attach to a request. An empty
// token sends the request anonymously.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type StaticToken string

func (t StaticToken) AccessToken(context.Context) (string, error) { return string(t), nil }

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// WithTokenSource returns a copy of c that authenticates with ts.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("content api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("content api: %d %s", e.StatusCode, e.Message)
}

func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsConflict(err error) bool     { return StatusCode(err) == http.StatusConflict }
func IsNotFound(err error) bool     { return StatusCode(err) == http.StatusNotFound }
func IsUnauthorized(err error) bool { return StatusCode(err) == http.StatusUnauthorized }

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("access token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage pulls "error"/"message"/"detail" out of a JSON error body and
// falls back to the trimmed raw text.
func errorMessage(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4<<10))
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if json.Unmarshal(b, &body) == nil {
		for _, s := range []string{body.Error, body.Message, body.Detail} {
			if s != "" {
				return s
			}
		}
	}
	return strings.TrimSpace(string(b))
}

// list accepts a bare JSON array or an object carrying the array under
// "data" or "results".
type list[T any] []T

func (l *list[T]) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var env struct {
		Data    []T `json:"data"`
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return err
	}
	if env.Data != nil {
		*l = env.Data
	} else {
		*l = env.Results
	}
	return nil
}
