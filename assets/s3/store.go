// Package s3 uploads assets to an S3 bucket and serves them by public URL.
package s3

import (
	"context"
	"fmt"
	"io"
	"log"

	"greengallery/core"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3Store struct {
	client *s3.Client
	bucket string
	region string
}

// NewStore creates an S3-backed asset store.
func NewStore(bucketName string) *s3Store {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	return &s3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucketName,
		region: cfg.Region,
	}
}

// Upload streams the blob to the bucket, reporting transfer progress, and
// returns the object's public URL. The URL is only returned once PutObject
// has confirmed the transfer; progress callbacks are advisory.
func (s *s3Store) Upload(ctx context.Context, key, contentType string, r io.Reader, size int64, onProgress func(float64)) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   core.NewProgressReader(r, size, onProgress),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload asset %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
