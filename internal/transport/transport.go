// Package transport is the HTTP boundary to the remote tracker API. It
// exposes the minimal get/post contract the services consume and surfaces
// non-2xx responses as *Error carrying the status code, unchanged. Retry
// and backoff are deliberately not implemented here.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const apiPrefix = "/rest/api/3/"

// Client is the transport contract consumed by the service layer.
type Client interface {
	Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
}

// Error is a non-2xx response from the remote API.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api status=%d body=%s", e.Status, strings.TrimSpace(e.Body))
}

// HTTPClient implements Client against a real tracker instance.
type HTTPClient struct {
	baseURL string
	email   string
	token   string
	http    *http.Client
	log     *zap.Logger
}

// NewHTTPClient builds a client for the instance at baseURL. With an email
// the token is sent as basic auth credentials, otherwise as a bearer token.
func NewHTTPClient(baseURL, email, token string, timeout time.Duration, log *zap.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		email:   email,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Get issues a GET request against an API path with query parameters.
func (c *HTTPClient) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

// Post issues a POST request with a JSON body against an API path.
func (c *HTTPClient) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, body any) (json.RawMessage, error) {
	u := c.baseURL + apiPrefix + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.email != "" {
		req.SetBasicAuth(c.email, c.token)
	} else if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	requestID := uuid.New().String()
	start := time.Now()
	c.log.Debug("api request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.log.Debug("api response",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode >= 300 {
		return nil, &Error{Status: resp.StatusCode, Body: string(data)}
	}
	if resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return json.RawMessage("{}"), nil
	}
	return json.RawMessage(data), nil
}
