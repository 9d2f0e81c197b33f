package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PhotoStore issues presigned upload URLs. The client uploads directly to
// object storage; the API never proxies image bytes.
type PhotoStore interface {
	PresignPut(ctx context.Context, key, contentType string, expiration time.Duration) (string, error)
	ObjectURL(key string) string
}

type s3Store struct {
	presign *s3.PresignClient
	bucket  string
	region  string
}

// NewS3PhotoStore creates a PhotoStore backed by S3, using the default AWS
// credential chain.
func NewS3PhotoStore(ctx context.Context, bucket, region string) (PhotoStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &s3Store{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		region:  region,
	}, nil
}

func (s *s3Store) PresignPut(ctx context.Context, key, contentType string, expiration time.Duration) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return req.URL, nil
}

func (s *s3Store) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
