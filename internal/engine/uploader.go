package engine

import (
	"context"
	"errors"

	"github.com/hmchef/hmchef/internal/client"
	"github.com/hmchef/hmchef/internal/model"
)

// MediaUploader turns a device-local image reference into a durable remote
// URL. It only runs when a recipe is being persisted against the remote
// service; references that are already remote URLs must never reach it.
type MediaUploader struct {
	api UploadAPI
}

func NewMediaUploader(api UploadAPI) *MediaUploader {
	return &MediaUploader{api: api}
}

// Upload transfers the image behind localRef and returns its remote URL.
// Every failure is an *UploadError; the caller aborts the enclosing add.
func (u *MediaUploader) Upload(ctx context.Context, id *model.Identity, localRef string) (string, error) {
	if model.IsRemoteRef(localRef) {
		return "", &UploadError{Detail: "reference is already a remote URL"}
	}

	remoteURL, err := u.api.Upload(ctx, id, localRef)
	if err != nil {
		var remote *client.RemoteError
		if errors.As(err, &remote) {
			return "", &UploadError{StatusCode: remote.StatusCode, Detail: remote.Detail}
		}
		return "", &UploadError{Detail: err.Error()}
	}
	return remoteURL, nil
}
