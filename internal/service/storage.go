package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/hmchef/hmchef/config"
)

// ImageStorage stores an uploaded recipe image and returns its public URL.
type ImageStorage interface {
	Save(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

// S3ImageStorage stores images in an S3 bucket with public-read access.
type S3ImageStorage struct {
	s3 *config.S3Config
}

func NewS3ImageStorage(s3cfg *config.S3Config) *S3ImageStorage {
	return &S3ImageStorage{s3: s3cfg}
}

func (s *S3ImageStorage) Save(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	key := fmt.Sprintf("recipe-images/%s%s", uuid.New().String(), safeExt(filename))

	_, err := s.s3.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3.BucketName, key)
	log.Printf("uploaded image to S3: %s", publicURL)
	return publicURL, nil
}

// DiskImageStorage writes images under a local directory that the server
// serves back at baseURL/uploads/. Single-box deployments and tests use it
// instead of S3.
type DiskImageStorage struct {
	dir     string
	baseURL string
}

func NewDiskImageStorage(dir, baseURL string) (*DiskImageStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskImageStorage{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *DiskImageStorage) Save(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	name := uuid.New().String() + safeExt(filename)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return s.baseURL + "/uploads/" + name, nil
}

// safeExt keeps a short, lowercase file extension and drops anything odd.
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	}
	return ".jpg"
}
