// Package s3 stores images in an S3-compatible bucket (Cloudflare R2, AWS S3,
// MinIO).
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL prefixes object keys in returned URLs, e.g. a CDN or
	// the bucket's public r2.dev domain.
	PublicBaseURL string
	PathStyle     bool
}

func ConfigFromEnv() Config {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "auto"
	}
	return Config{
		Endpoint:        os.Getenv("AWS_ENDPOINT"),
		Region:          region,
		Bucket:          os.Getenv("AWS_BUCKET"),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		PublicBaseURL:   os.Getenv("IMAGE_PUBLIC_BASE_URL"),
		PathStyle:       os.Getenv("AWS_PATH_STYLE") == "1",
	}
}

// Enabled reports whether enough is configured to attempt uploads.
func (c Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

type S3Client struct {
	Client     *s3.Client
	Bucket     string
	publicBase string
}

// New builds a client with static credentials.
func New(ctx context.Context, c Config) (*S3Client, error) {
	if !c.Enabled() {
		return nil, errors.New("s3: bucket and credentials are required")
	}
	creds := credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, "")

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = c.PathStyle
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	base := strings.TrimRight(c.PublicBaseURL, "/")
	if base == "" && c.Endpoint != "" {
		base = strings.TrimRight(c.Endpoint, "/") + "/" + c.Bucket
	}
	return &S3Client{Client: client, Bucket: c.Bucket, publicBase: base}, nil
}

// Put uploads body under key and returns its public URL.
func (s *S3Client) Put(ctx context.Context, key, contentType string, body io.ReadSeeker) (string, error) {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.Bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("s3: put object %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

func (s *S3Client) PublicURL(key string) string {
	return s.publicBase + "/" + strings.TrimLeft(key, "/")
}

// Delete removes an object (used to clean up after a failed submit).
func (s *S3Client) Delete(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3: delete object %s: %w", key, err)
	}
	return nil
}
