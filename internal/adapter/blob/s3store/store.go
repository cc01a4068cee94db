// Package s3store stores blobs in an S3-compatible bucket and hands out
// presigned GET URLs for downloads.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/heartmarshall/signroom-backend/internal/adapter/blob"
	"github.com/heartmarshall/signroom-backend/internal/config"
	"github.com/heartmarshall/signroom-backend/internal/domain"
)

// Store is a blob store backed by one bucket.
type Store struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucket     string
	presignTTL time.Duration
}

// New builds an S3 client from cfg. Static keys are used when both are
// set; otherwise the default AWS credential chain applies. A custom
// endpoint (MinIO, LocalStack) usually needs path-style addressing.
func New(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKeyID != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			// S3-compatible servers often reject the default trailing checksums.
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
			o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		}
		o.UsePathStyle = cfg.S3UsePathStyle
	})

	return &Store{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucket:     cfg.S3Bucket,
		presignTTL: cfg.PresignTTL,
	}, nil
}

// Put uploads data under key.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	cleaned, err := blob.CleanKey(key)
	if err != nil {
		return err
	}

	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(cleaned),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("s3 put %s: %w", cleaned, err)
	}
	return nil
}

// Get downloads the object under key. Returns domain.ErrNotFound if absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cleaned, err := blob.CleanKey(key)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(cleaned),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("blob %s: %w", cleaned, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("s3 get %s: %w", cleaned, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %s: %w", cleaned, err)
	}
	return data, nil
}

// Delete removes the object under key. S3 treats a missing key as success.
func (s *Store) Delete(ctx context.Context, key string) error {
	cleaned, err := blob.CleanKey(key)
	if err != nil {
		return err
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(cleaned),
	}); err != nil {
		return fmt.Errorf("s3 delete %s: %w", cleaned, err)
	}
	return nil
}

// URL returns a presigned GET URL valid for the configured TTL.
func (s *Store) URL(ctx context.Context, key string) (string, error) {
	cleaned, err := blob.CleanKey(key)
	if err != nil {
		return "", err
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(cleaned),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s: %w", cleaned, err)
	}
	return req.URL, nil
}

// Ping checks that the bucket exists and is reachable with the configured
// credentials.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("head bucket %s: %w", s.bucket, err)
	}
	return nil
}
