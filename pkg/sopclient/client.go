// Package sopclient is the Go client SDK for the GenX S&OP API. It owns the
// HTTP boundary (token attachment, status dispatch), the session and
// preference stores, and the per-resource response normalizers that absorb
// backend shape drift (bare arrays vs pagination envelopes, numeric fields
// serialized as strings).
package sopclient

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

	"github.com/genxsop/genxsop/pkg/config"
)

// Sentinel errors returned by the client boundary.
var (
	// ErrSessionExpired is returned on any 401. The persisted token has
	// already been cleared by the time the caller sees it.
	ErrSessionExpired = errors.New("session expired, sign in again")
	// ErrNotFound is returned on 404 so callers can handle it locally.
	ErrNotFound = errors.New("resource not found")
	// ErrLoginFailed is the generic login failure. No cause detail is exposed.
	ErrLoginFailed = errors.New("invalid email or password")
)

// APIError is a non-2xx response the caller may want to inspect.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// Client is the shared request/response pipeline. It attaches the session's
// bearer token to every request and maps error statuses centrally, so the
// resource services stay thin.
type Client struct {
	base    string
	http    *http.Client
	session *Session
}

// New builds a client over cfg. The session provides the bearer token and
// receives the invalidation signal on 401.
func New(cfg config.ClientConfig, session *Session) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		base:    base,
		http:    &http.Client{Timeout: cfg.Timeout},
		session: session,
	}
}

// errorBody is the wire shape of API errors. The FastAPI-era backend used
// {detail: "..."} or {detail: {message: "..."}}; the current one uses
// {code, message}. All three are accepted.
type errorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
}

func (b errorBody) detailMessage() string {
	if b.Message != "" {
		return b.Message
	}
	if len(b.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.Detail, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b.Detail, &obj); err == nil {
		return obj.Message
	}
	return ""
}

// do performs one request and returns the response body for 2xx statuses.
// Error statuses are dispatched here:
//
//	401        → session invalidated (once), ErrSessionExpired
//	403        → generic access-denied APIError
//	400, 422   → APIError carrying the extracted validation detail
//	404        → ErrNotFound, for caller-level handling
//	500 and up → generic server-error APIError
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	var eb errorBody
	_ = json.Unmarshal(raw, &eb)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.session.invalidate()
		return nil, ErrSessionExpired
	case resp.StatusCode == http.StatusForbidden:
		return nil, &APIError{Status: resp.StatusCode, Code: eb.Code, Message: "access denied, insufficient permissions"}
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		msg := eb.detailMessage()
		if msg == "" {
			msg = "validation error"
		}
		return nil, &APIError{Status: resp.StatusCode, Code: eb.Code, Message: msg}
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 500:
		return nil, &APIError{Status: resp.StatusCode, Code: eb.Code, Message: "server error, try again later"}
	default:
		msg := eb.detailMessage()
		return nil, &APIError{Status: resp.StatusCode, Code: eb.Code, Message: msg}
	}
}

// getJSON fetches path and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	raw, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decodeInto(raw, path, out)
}

// postJSON posts body to path and decodes the response into out (nil to discard).
func (c *Client) postJSON(ctx context.Context, path string, query url.Values, body, out any) error {
	raw, err := c.do(ctx, http.MethodPost, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeInto(raw, path, out)
}

// putJSON puts body to path and decodes the response into out (nil to discard).
func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	raw, err := c.do(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeInto(raw, path, out)
}

// delete issues a DELETE and discards the body.
func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func decodeInto(raw []byte, path string, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
