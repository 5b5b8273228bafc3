package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vaibhaw-/VetGen/internal/vetgen/logger"
)

// XLSXContentType is the media type of the generated workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrBucketRequired is returned when no bucket is configured.
var ErrBucketRequired = errors.New("s3 bucket required")

// Config holds construction parameters. Credentials come from the default
// AWS chain (AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / profile).
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional; set for MinIO or other S3-compatible stores
	Prefix    string // optional key prefix, e.g. "samples/2025"
	PathStyle bool
}

// putObjectAPI is the subset of the S3 client the publisher needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads generated artifacts to a single bucket.
type Publisher struct {
	client putObjectAPI
	bucket string
	prefix string
}

// New creates a Publisher from Config. optFns are applied to the S3 client
// after the Config settings.
func New(ctx context.Context, cfg Config, optFns ...func(*s3.Options)) (*Publisher, error) {
	if cfg.Bucket == "" {
		return nil, ErrBucketRequired
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	s3Opts := append([]func(*s3.Options){func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}}, optFns...)
	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return newWithClient(client, cfg), nil
}

func newWithClient(client putObjectAPI, cfg Config) *Publisher {
	return &Publisher{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}
}

// Key joins the configured prefix with name.
func (p *Publisher) Key(name string) string {
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

// Upload stores r under the prefixed key and returns its s3:// URI.
func (p *Publisher) Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	key := p.Key(name)
	input := &s3.PutObjectInput{Bucket: aws.String(p.bucket), Key: aws.String(key), Body: r}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := p.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", p.bucket, key, err)
	}
	uri := fmt.Sprintf("s3://%s/%s", p.bucket, key)
	logger.L().Infow("Artifact published", "uri", uri)
	return uri, nil
}

// UploadFile uploads a local file under its base name.
func (p *Publisher) UploadFile(ctx context.Context, localPath, contentType string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()
	return p.Upload(ctx, filepath.Base(localPath), f, contentType)
}
