// Package objstore provides the S3-backed fetcher for the monitored
// currency rates file.
package objstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ratewatch/ratewatch/pkg/types"
)

// S3API is the subset of the S3 client used by the fetcher.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Fetcher reads objects from S3.
type S3Fetcher struct {
	client S3API
}

// New builds an S3Fetcher using the default AWS credential chain.
func New(ctx context.Context, region string) (*S3Fetcher, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &S3Fetcher{client: s3.NewFromConfig(cfg)}, nil
}

// NewWithClient builds an S3Fetcher around an existing client.
func NewWithClient(client S3API) *S3Fetcher {
	return &S3Fetcher{client: client}
}

// BuildGetObjectInput constructs the fetch request for the given
// location. Returns nil when bucket or key is empty; that is a
// misconfiguration guard, not normal control flow.
func BuildGetObjectInput(bucket, key string) *s3.GetObjectInput {
	if bucket == "" || key == "" {
		return nil
	}
	return &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
}

// Fetch reads the whole object body. The monitored file is small, so
// it is buffered in memory.
func (f *S3Fetcher) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	input := BuildGetObjectInput(bucket, key)
	if input == nil {
		return nil, types.NewValidationError("s3 bucket or key is missing")
	}
	out, err := f.client.GetObject(ctx, input)
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading object body: %w", err)
	}
	return body, nil
}
