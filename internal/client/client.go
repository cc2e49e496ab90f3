// Package client implements the HTTP side of the remote contract: the auth
// service, the recipe service, the upload service and the third-party recipe
// search provider.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hmchef/hmchef/internal/model"
)

const defaultTimeout = 30 * time.Second

// RemoteError is a rejection reported by a remote service: a non-2xx status
// or an explicit failure payload. The Detail text is what the service said.
type RemoteError struct {
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote service rejected request (status %d): %s", e.StatusCode, e.Detail)
}

// Client talks to the recipe platform's own services under a single base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// do sends the request and decodes the JSON body into out (when out is
// non-nil). Non-2xx responses are returned as *RemoteError carrying the
// service's detail text.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RemoteError{StatusCode: resp.StatusCode, Detail: detailFrom(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// detailFrom pulls the "detail" field out of an error payload, falling back
// to the raw body text.
func detailFrom(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(body))
}

func authorize(req *http.Request, id *model.Identity) {
	// The recipe service expects the raw token, no Bearer prefix.
	req.Header.Set("Authorization", id.AccessToken)
}
