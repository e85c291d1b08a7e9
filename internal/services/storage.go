package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	appconfig "github.com/Dharmikkumbhani/khichdi-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BlobSink stores an uploaded image and returns a stable URL for it
type BlobSink interface {
	Store(ctx context.Context, hotelID string, data []byte, contentType string) (string, error)
	// Inline reports whether URLs embed the image itself rather than
	// pointing at an external store.
	Inline() bool
}

// S3Sink stores images in an S3-compatible bucket
type S3Sink struct {
	client    *s3.Client
	bucket    string
	region    string
	publicURL string
}

// NewS3Sink creates a blob sink backed by the configured media store
func NewS3Sink(ctx context.Context, cfg appconfig.MediaConfig) (*S3Sink, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Sink{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Store uploads the image bytes and returns the object's public URL
func (s *S3Sink) Store(ctx context.Context, hotelID string, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("menus/menu_%s_%d%s", hotelID, time.Now().UnixNano(), extensionFor(contentType))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	if s.publicURL != "" {
		return s.publicURL + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// Inline implements BlobSink
func (s *S3Sink) Inline() bool { return false }

// InlineSink embeds images as data URIs. Used when no media store
// credentials are configured, so uploads stay self-contained.
type InlineSink struct{}

// NewInlineSink creates the fallback blob sink
func NewInlineSink() *InlineSink { return &InlineSink{} }

// Store encodes the image as a data URI
func (s *InlineSink) Store(_ context.Context, _ string, data []byte, contentType string) (string, error) {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Inline implements BlobSink
func (s *InlineSink) Inline() bool { return true }

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
