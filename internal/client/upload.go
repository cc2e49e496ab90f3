package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hmchef/hmchef/internal/model"
)

type uploadResponse struct {
	ImageURL string `json:"image_url"`
}

// Upload transfers the file behind a device-local reference to the upload
// service and returns the durable remote URL. localRef is a plain path or a
// file:// URI.
func (c *Client) Upload(ctx context.Context, id *model.Identity, localRef string) (string, error) {
	path := strings.TrimPrefix(localRef, "file://")

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/api/upload?user=%s", c.baseURL, url.QueryEscape(id.Username))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	authorize(req, id)

	var resp uploadResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	if resp.ImageURL == "" {
		return "", &RemoteError{StatusCode: http.StatusBadGateway, Detail: "no image_url in response"}
	}
	return resp.ImageURL, nil
}
