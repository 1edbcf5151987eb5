package aws_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsclient "github.com/cyphera/cyphera-autotax/client/aws"
	"github.com/cyphera/cyphera-autotax/logger"
)

func init() {
	logger.InitLogger("test")
}

// fakeS3 fails the first failures calls with err, then serves body.
type fakeS3 struct {
	failures int
	err      error
	body     string
	calls    int
	bucket   string
	key      string
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls++
	f.bucket = *params.Bucket
	f.key = *params.Key
	if f.calls <= f.failures {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func noWaitRetry(maxRetries int) awsclient.RetryConfig {
	return awsclient.RetryConfig{MaxRetries: maxRetries, Multiplier: 1}
}

func TestS3CatalogSource_Documents(t *testing.T) {
	t.Run("fetches the object", func(t *testing.T) {
		fake := &fakeS3{body: "version: 1.0.0\njurisdictions: []\n"}
		source := awsclient.NewS3CatalogSourceWithClient(fake, "rules-bucket", "catalog/rules.yaml", noWaitRetry(3))

		docs, err := source.Documents(context.Background())
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "s3://rules-bucket/catalog/rules.yaml", docs[0].Name)
		assert.Equal(t, fake.body, string(docs[0].Data))
		assert.Equal(t, "rules-bucket", fake.bucket)
		assert.Equal(t, "catalog/rules.yaml", fake.key)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		fake := &fakeS3{failures: 2, err: errors.New("throttled"), body: "version: 1.0.0\n"}
		source := awsclient.NewS3CatalogSourceWithClient(fake, "b", "k", noWaitRetry(3))

		docs, err := source.Documents(context.Background())
		require.NoError(t, err)
		assert.Len(t, docs, 1)
		assert.Equal(t, 3, fake.calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		fake := &fakeS3{failures: 10, err: errors.New("unavailable")}
		source := awsclient.NewS3CatalogSourceWithClient(fake, "b", "k", noWaitRetry(2))

		_, err := source.Documents(context.Background())
		require.Error(t, err)
		assert.Equal(t, 3, fake.calls)
	})

	t.Run("missing key is not retried", func(t *testing.T) {
		fake := &fakeS3{failures: 10, err: &s3types.NoSuchKey{}}
		source := awsclient.NewS3CatalogSourceWithClient(fake, "b", "k", noWaitRetry(5))

		_, err := source.Documents(context.Background())
		require.Error(t, err)
		assert.Equal(t, 1, fake.calls)
		var noKey *s3types.NoSuchKey
		assert.True(t, errors.As(err, &noKey))
	})

	t.Run("describe", func(t *testing.T) {
		source := awsclient.NewS3CatalogSourceWithClient(&fakeS3{}, "b", "k", awsclient.DefaultRetryConfig())
		assert.Equal(t, "s3://b/k", source.Describe())
	})
}
