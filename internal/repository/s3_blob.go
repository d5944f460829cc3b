package repository

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/crewdesk/crewdesk/internal/config"
)

// S3BlobStore implements domain.BlobStore against any S3-compatible
// endpoint (SeaweedFS, MinIO, AWS).
type S3BlobStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3BlobStore creates a new blob store and ensures the bucket exists
func NewS3BlobStore(ctx context.Context, cfg appConfig.S3Config) (*S3BlobStore, error) {
	// Static "any" credentials satisfy the signature requirement of
	// self-hosted S3-compatible stores.
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("any", "any", "")),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // Required for many S3-compatible stores
	})

	store := &S3BlobStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.Endpoint,
	}

	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

// Upload saves a file under key and returns its URL
func (r *S3BlobStore) Upload(ctx context.Context, file []byte, key string, contentType string) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", r.publicURL, r.bucket, key)
	return url, nil
}

// Delete removes the object under key
func (r *S3BlobStore) Delete(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// ensureBucket checks if bucket exists, creating it if necessary
func (r *S3BlobStore) ensureBucket(ctx context.Context) error {
	_, err := r.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(r.bucket),
	})
	if err != nil {
		_, err = r.client.CreateBucket(ctx, &s3.CreateBucketInput{
			Bucket: aws.String(r.bucket),
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", r.bucket, err)
		}
	}
	return nil
}
