package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

type authResponse struct {
	AccessToken string `json:"access_token"`
	Detail      string `json:"detail"`
}

// Login submits credentials to the login endpoint and returns the issued
// access token. A rejection comes back as *RemoteError with the service's
// detail text.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	return c.authenticate(ctx, "/api/auth/login", username, password)
}

// Register creates a new account and returns the issued access token.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	return c.authenticate(ctx, "/api/auth/register", username, password)
}

func (c *Client) authenticate(ctx context.Context, path, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp authResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		detail := resp.Detail
		if detail == "" {
			detail = "no access token in response"
		}
		return "", &RemoteError{StatusCode: http.StatusUnauthorized, Detail: detail}
	}
	return resp.AccessToken, nil
}
