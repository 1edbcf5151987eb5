package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/cyphera/cyphera-autotax/logger"
	"github.com/cyphera/cyphera-autotax/types/business"
)

// S3GetObjectAPI is the part of the S3 client the catalog source uses.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// RetryConfig configures retries of the catalog fetch
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig provides sensible defaults for retries
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      2.0,
		MaxElapsedTime:  30 * time.Second,
	}
}

// S3CatalogSource reads a rules catalog bundle from one S3 object. The object
// may hold several YAML documents separated by "---".
type S3CatalogSource struct {
	svc    S3GetObjectAPI
	bucket string
	key    string
	retry  RetryConfig
}

// NewS3CatalogSource creates a catalog source using the default AWS
// configuration chain (environment variables, shared config, IAM role).
func NewS3CatalogSource(ctx context.Context, bucket, key string) (*S3CatalogSource, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewS3CatalogSourceWithClient(s3.NewFromConfig(cfg), bucket, key, DefaultRetryConfig()), nil
}

// NewS3CatalogSourceWithClient creates a catalog source around an existing client.
func NewS3CatalogSourceWithClient(svc S3GetObjectAPI, bucket, key string, retry RetryConfig) *S3CatalogSource {
	return &S3CatalogSource{
		svc:    svc,
		bucket: bucket,
		key:    key,
		retry:  retry,
	}
}

// Describe names the object for logs and errors.
func (s *S3CatalogSource) Describe() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

// Documents fetches the catalog object. Transient failures are retried with
// exponential backoff; a missing bucket or key is not.
func (s *S3CatalogSource) Documents(ctx context.Context) ([]business.CatalogDocument, error) {
	var body []byte
	attempt := 0

	operation := func() error {
		attempt++
		out, err := s.svc.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.key),
		})
		if err != nil {
			var noKey *s3types.NoSuchKey
			var noBucket *s3types.NoSuchBucket
			if errors.As(err, &noKey) || errors.As(err, &noBucket) {
				return backoff.Permanent(err)
			}
			logger.Component("s3").Warn("Failed to fetch rules catalog from S3, will retry",
				zap.String("source", s.Describe()),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return err
		}
		defer out.Body.Close()

		data, err := io.ReadAll(out.Body)
		if err != nil {
			return fmt.Errorf("failed to read catalog object: %w", err)
		}
		body = data
		return nil
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = s.retry.InitialInterval
	expBackoff.MaxInterval = s.retry.MaxInterval
	expBackoff.Multiplier = s.retry.Multiplier
	expBackoff.MaxElapsedTime = s.retry.MaxElapsedTime

	policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, uint64(s.retry.MaxRetries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		logger.Component("s3").Error("Failed to fetch rules catalog from S3",
			zap.String("source", s.Describe()),
			zap.Int("attempts", attempt),
			zap.Error(err))
		return nil, fmt.Errorf("failed to fetch %s: %w", s.Describe(), err)
	}

	logger.Component("s3").Info("Fetched rules catalog from S3",
		zap.String("source", s.Describe()),
		zap.Int("bytes", len(body)))
	return []business.CatalogDocument{{Name: s.Describe(), Data: body}}, nil
}
