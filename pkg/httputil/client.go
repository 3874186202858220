// Package httputil provides the HTTP plumbing shared by remote metadata
// lookups: a small GET client with retry support and sentinel errors that
// keep "resource does not exist" distinct from "could not reach the remote".
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the remote answered but the resource
	// doesn't exist (404) or came back empty.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for connectivity failures: timeouts,
	// connection errors and 5xx responses.
	ErrNetwork = errors.New("network error")
)

// Client performs HTTP GET requests with automatic retries for transient
// failures. All methods are safe for concurrent use.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with a standard request timeout.
// Headers are applied to all requests; pass nil if none are needed.
func NewClient(headers map[string]string) *Client {
	return &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		headers: headers,
	}
}

// GetText performs a GET request and returns the response body as a string.
// Useful for plain-text endpoints like .SRCINFO documents or name listings.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	data, err := c.GetBytes(ctx, url)
	return string(data), err
}

// GetBytes performs a GET request and returns the raw response body.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		body, err := c.doRequest(ctx, url)
		if err != nil {
			return err
		}
		defer body.Close()
		data, err = io.ReadAll(body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// GetJSON performs a GET request and JSON-decodes the response into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	return RetryWithBackoff(ctx, func() error {
		body, err := c.doRequest(ctx, url)
		if err != nil {
			return err
		}
		defer body.Close()
		return json.NewDecoder(body).Decode(v)
	})
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
