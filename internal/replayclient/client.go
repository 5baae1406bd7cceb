// Package replayclient talks to a running chess-replay server.
package replayclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/IJMacD/chess/pkg/replaydto"
)

type Client struct {
	baseURL string
	http    *fasthttp.Client

	defaultTimeout time.Duration
	retryMax       int
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func WithMaxConnsPerHost(n int) Option {
	return func(c *Client) { c.http.MaxConnsPerHost = n }
}

func WithRetry(max int) Option {
	return func(c *Client) { c.retryMax = max }
}

// WithDialer replaces the TCP dialer, e.g. with an in-memory listener.
func WithDialer(dial func(addr string) (net.Conn, error)) Option {
	return func(c *Client) { c.http.Dial = dial }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 16},
		defaultTimeout: 10 * time.Second,
		retryMax:       3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response. Domain carries the decoded error body
// when the server sent one.
type APIError struct {
	Status int
	Domain replaydto.DomainError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("replay api error: status=%d code=%s message=%s", e.Status, e.Domain.Code, e.Domain.Message)
}

// Replay asks the server for the board of text at cursor. A negative cursor
// means the last turn.
func (c *Client) Replay(ctx context.Context, text string, cursor int) (*replaydto.ViewState, error) {
	var v replaydto.ViewState
	if err := c.do(ctx, fasthttp.MethodPost, "/replay"+cursorQuery(cursor), []byte(text), &v, true); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) CreateDocument(ctx context.Context, text string) (*replaydto.Document, error) {
	var d replaydto.Document
	if err := c.do(ctx, fasthttp.MethodPost, "/documents", []byte(text), &d, false); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) Document(ctx context.Context, id string) (*replaydto.Document, error) {
	var d replaydto.Document
	if err := c.do(ctx, fasthttp.MethodGet, "/documents/"+url.PathEscape(id), nil, &d, true); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) SaveDocument(ctx context.Context, id, text string) error {
	return c.do(ctx, fasthttp.MethodPut, "/documents/"+url.PathEscape(id), []byte(text), nil, true)
}

func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, fasthttp.MethodDelete, "/documents/"+url.PathEscape(id), nil, nil, false)
}

// View fetches the board of a stored document. A negative cursor means the
// last turn; step may be empty.
func (c *Client) View(ctx context.Context, id string, cursor int, step string) (*replaydto.ViewState, error) {
	path := "/documents/" + url.PathEscape(id) + "/view" + cursorQuery(cursor)
	if step != "" {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		path += sep + "step=" + url.QueryEscape(step)
	}
	var v replaydto.ViewState
	if err := c.do(ctx, fasthttp.MethodGet, path, nil, &v, true); err != nil {
		return nil, err
	}
	return &v, nil
}

func cursorQuery(cursor int) string {
	if cursor < 0 {
		return ""
	}
	return "?cursor=" + strconv.Itoa(cursor)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any, retry bool) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if body != nil {
		req.Header.SetContentType("text/plain; charset=utf-8")
		req.SetBody(body)
	}

	attempts := 1
	if retry {
		attempts = max(c.retryMax, 1)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := c.http.DoDeadline(req, resp, c.computeDeadline(ctx))
		if err == nil {
			status := resp.StatusCode()
			if status >= 200 && status < 300 {
				if out != nil && status != fasthttp.StatusNoContent {
					if err := json.Unmarshal(resp.Body(), out); err != nil {
						return fmt.Errorf("decode response: %w", err)
					}
				}
				return nil
			}
			apiErr := &APIError{Status: status}
			if jerr := json.Unmarshal(resp.Body(), &apiErr.Domain); jerr != nil {
				apiErr.Domain.Message = truncate(string(resp.Body()), 512)
			}
			if !shouldRetryStatus(status) {
				return apiErr
			}
			err = apiErr
		} else {
			err = fmt.Errorf("request failed: %w", err)
		}

		lastErr = err
		if attempt == attempts {
			break
		}
		if sleepErr := sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
			return lastErr
		}
	}

	if lastErr == nil {
		lastErr = errors.New("unknown error")
	}
	return lastErr
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func backoffDuration(attempt int) time.Duration {
	attempt = min(max(attempt, 1), 6)
	return time.Duration(1<<uint(attempt-1)) * 100 * time.Millisecond
}

func shouldRetryStatus(code int) bool {
	switch code {
	case 500, 502, 503, 504:
		return true
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
