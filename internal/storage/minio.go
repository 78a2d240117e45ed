package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"fundraiser/internal/config"
)

// Minio stores images as objects in a MinIO (or S3-compatible) bucket.
type Minio struct {
	client *minio.Client
	bucket string
	base   string
}

// NewMinio constructs a MinIO-backed storage from config and ensures the
// bucket exists.
func NewMinio(ctx context.Context, cfg *config.Config) (*Minio, error) {
	if strings.TrimSpace(cfg.MinioEndpoint) == "" {
		return nil, errors.New("minio endpoint is required")
	}
	if strings.TrimSpace(cfg.MinioAccessKey) == "" || strings.TrimSpace(cfg.MinioSecretKey) == "" {
		return nil, errors.New("minio access key and secret key are required")
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	m := &Minio{
		client: client,
		bucket: cfg.MinioBucket,
		base:   fmt.Sprintf("%s://%s/%s", scheme, cfg.MinioEndpoint, cfg.MinioBucket),
	}

	exists, err := client.BucketExists(ctx, m.bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Save uploads the image and returns its public URL.
func (m *Minio) Save(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Ext(filename))
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return m.base + "/" + key, nil
}
