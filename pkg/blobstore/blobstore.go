// Package blobstore stores uploaded media in an S3-compatible bucket.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNotConfigured is returned by NewS3Store when credentials are missing.
var ErrNotConfigured = errors.New("blobstore: S3 credentials not configured")

// Store is the object storage used for media uploads.
type Store interface {
	Put(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
}

// S3Config addresses an S3-compatible endpoint.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	// PublicURL is the base under which buckets are served. Empty means Endpoint.
	PublicURL string
}

// S3Store implements Store on aws-sdk-go-v2.
type S3Store struct {
	client    *s3.Client
	publicURL string
}

// NewS3Store builds the client. Path-style addressing is used so MinIO and
// similar endpoints work.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, ErrNotConfigured
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	public := cfg.PublicURL
	if public == "" {
		public = cfg.Endpoint
	}
	return &S3Store{client: client, publicURL: strings.TrimRight(public, "/")}, nil
}

// Put uploads body and returns its public URL.
func (s *S3Store) Put(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("upload to S3: %w", err)
	}
	return s.PublicURL(bucket, key), nil
}

// Delete removes an object. Deleting a missing key is not an error on S3.
func (s *S3Store) Delete(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete from S3: %w", err)
	}
	return nil
}

// PublicURL returns <publicURL>/<bucket>/<key>.
func (s *S3Store) PublicURL(bucket, key string) string {
	return s.publicURL + "/" + bucket + "/" + key
}

var _ Store = (*S3Store)(nil)
