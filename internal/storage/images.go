package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"bitary-listing-service/internal/config"
)

var ErrEmptyImageRef = errors.New("storage: empty image reference")

// ImageResolver turns a stored image reference into a URL a browser can
// load.
type ImageResolver interface {
	ResolveImageURL(ctx context.Context, ref string) (string, error)
}

// PassthroughResolver returns references unchanged. It is used when no
// object storage is configured.
type PassthroughResolver struct{}

func (PassthroughResolver) ResolveImageURL(_ context.Context, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", ErrEmptyImageRef
	}
	return ref, nil
}

// S3ImageResolver presigns GET URLs for object keys in the image bucket.
// Absolute http(s) references are returned as-is.
type S3ImageResolver struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewS3ImageResolver creates a resolver for cfg. The region must be set so
// presigning never needs a bucket location round trip.
func NewS3ImageResolver(cfg config.S3Config) (*S3ImageResolver, error) {
	if cfg.Region == "" {
		return nil, errors.New("storage: S3 region is required for presigning")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to init S3 client: %w", err)
	}
	return &S3ImageResolver{client: client, bucket: cfg.Bucket, expiry: cfg.PresignExpiry}, nil
}

func (r *S3ImageResolver) ResolveImageURL(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrEmptyImageRef
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	u, err := r.client.PresignedGetObject(ctx, r.bucket, strings.TrimPrefix(ref, "/"), r.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("storage: failed to presign %q: %w", ref, err)
	}
	return u.String(), nil
}
