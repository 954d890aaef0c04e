package blobstore

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// S3API is the subset of the S3 client the store needs
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Store writes blobs as objects under an optional key prefix
type s3Store struct {
	client S3API
	bucket string
	prefix string
	logger *zap.Logger
}

// NewS3 creates a Store backed by an S3 bucket using the default AWS credential chain.
// A non-empty endpoint targets an S3-compatible service with path-style addressing.
func NewS3(ctx context.Context, bucket, region, prefix, endpoint string, logger *zap.Logger) (Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("S3 blob store initialised",
		zap.String("bucket", bucket),
		zap.String("region", region),
		zap.String("prefix", prefix),
	)

	return NewS3WithClient(client, bucket, prefix, logger), nil
}

// NewS3WithClient creates a Store around an existing client
func NewS3WithClient(client S3API, bucket, prefix string, logger *zap.Logger) Store {
	return &s3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger.With(zap.String("component", "s3-blob-store")),
	}
}

func (s *s3Store) Put(ctx context.Context, name string, r io.Reader) error {
	if err := validName(name); err != nil {
		return err
	}

	key := path.Join(s.prefix, name)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType := mime.TypeByExtension(path.Ext(name)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error("failed to upload object", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to upload %s to s3: %w", key, err)
	}

	s.logger.Debug("object uploaded", zap.String("bucket", s.bucket), zap.String("key", key))
	return nil
}
