// Package storage archives uploaded resumes to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultAttempts is how many times a failed upload is tried.
const DefaultAttempts = 3

// ErrNotConfigured is returned by NewS3Archive when no bucket is set.
var ErrNotConfigured = errors.New("object storage not configured")

// ObjectClient is the subset of the S3 API the archive uses.
type ObjectClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options describes the bucket and credentials.
type Options struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// Archive stores resume uploads under per-user keys.
type Archive struct {
	client   ObjectClient
	bucket   string
	attempts int
	backoff  time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewArchive wraps an existing client.
func NewArchive(client ObjectClient, bucket string, logger *zap.Logger) *Archive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archive{
		client:   client,
		bucket:   bucket,
		attempts: DefaultAttempts,
		backoff:  500 * time.Millisecond,
		logger:   logger,
		now:      time.Now,
	}
}

// NewS3Archive builds an S3 client from opts. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
// A custom endpoint enables path-style addressing for MinIO and R2.
func NewS3Archive(ctx context.Context, opts Options, logger *zap.Logger) (*Archive, error) {
	if opts.Bucket == "" {
		return nil, ErrNotConfigured
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewArchive(client, opts.Bucket, logger), nil
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ObjectKey builds resumes/{userID}/{YYYY/MM/DD}/{id}-{filename}.
func ObjectKey(userID, filename string, id uuid.UUID, at time.Time) string {
	name := unsafeKeyChars.ReplaceAllString(path.Base(strings.TrimSpace(filename)), "_")
	name = strings.Trim(name, "_")
	if name == "" || name == "." {
		name = "resume"
	}
	return path.Join("resumes", userID, at.UTC().Format("2006/01/02"), id.String()+"-"+name)
}

// Put uploads data and returns its object key. Transient failures are retried.
func (a *Archive) Put(ctx context.Context, userID, filename, contentType string, data []byte) (string, error) {
	key := ObjectKey(userID, filename, uuid.New(), a.now())
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := retry(ctx, a.attempts, a.backoff, func() (*s3.PutObjectOutput, error) {
		return a.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(a.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
			Metadata:    map[string]string{"user-id": userID},
		})
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", key, err)
	}

	a.logger.Debug("archived upload", zap.String("key", key), zap.Int("bytes", len(data)))
	return key, nil
}

// retry calls fn up to attempts times with linear backoff, stopping early when ctx ends.
func retry[T any](ctx context.Context, attempts int, backoff time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff * time.Duration(i+1)):
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
