// internals/helpers/oss/s3_client.go
package helper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"schoolerp_backend/internals/configs"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store uploads to any S3-compatible bucket (AWS, MinIO, R2).
type S3Store struct {
	client     *s3.Client
	bucket     string
	region     string
	endpoint   string
	publicBase string
	prefix     string
}

func NewS3StoreFromEnv(ctx context.Context, prefix string) (*S3Store, error) {
	bucket := configs.GetEnv("S3_BUCKET")
	region := configs.GetEnv("S3_REGION", "us-east-1")
	ak := configs.GetEnv("S3_ACCESS_KEY")
	sk := configs.GetEnv("S3_SECRET_KEY")
	endpoint := configs.GetEnv("S3_ENDPOINT")
	if bucket == "" || ak == "" || sk == "" {
		return nil, fmt.Errorf("%w: missing S3_BUCKET/S3_ACCESS_KEY/S3_SECRET_KEY", ErrNotConfigured)
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(ak, sk, "")),
	}
	if endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(endpoint))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		// custom endpoints (MinIO) need path-style addressing
		o.UsePathStyle = endpoint != ""
	})
	log.Printf("[S3] bucket %s (region=%s)", bucket, region)

	return &S3Store{
		client:     client,
		bucket:     bucket,
		region:     region,
		endpoint:   endpoint,
		publicBase: configs.GetEnv("S3_PUBLIC_BASE"),
		prefix:     strings.Trim(prefix, "/"),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty key")
	}
	key = joinKey(s.prefix, key)
	in := &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         r,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("s3.PutObject: %w", err)
	}
	return s.PublicURL(key), nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(joinKey(s.prefix, key)),
	})
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return nil
	}
	return err
}

func (s *S3Store) PublicURL(key string) string {
	fallback := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.bucket, s.region)
	if s.endpoint != "" {
		fallback = strings.TrimRight(s.endpoint, "/") + "/" + s.bucket
	}
	return publicURL(s.publicBase, fallback, key)
}
