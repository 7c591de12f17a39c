package seed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"catalog-api/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) ([]model.CreateProductRequest, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) ([]model.CreateProductRequest, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, path)
	}
	return nil, errors.New("not implemented")
}

// fakeS3 serves a single object body.
type fakeS3 struct {
	body  []byte
	err   error
	input *s3.GetObjectInput
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body))}, nil
}

func TestS3Loader_Load(t *testing.T) {
	client := &fakeS3{body: gzipLines(t, []string{
		`{"name":"Desk Lamp","description":"LED lamp","category":"Home","price":24.5}`,
	})}
	loader := &s3Loader{client: client, bucket: "seed-bucket", logger: zerolog.Nop()}

	records, err := loader.Load(context.Background(), "catalog/catalog.jsonl.gz")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Desk Lamp", records[0].Name)
	assert.Equal(t, "seed-bucket", aws.ToString(client.input.Bucket))
	assert.Equal(t, "catalog/catalog.jsonl.gz", aws.ToString(client.input.Key))
}

func TestS3Loader_Load_GetObjectError(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	loader := &s3Loader{client: client, bucket: "seed-bucket", logger: zerolog.Nop()}

	records, err := loader.Load(context.Background(), "catalog/catalog.jsonl.gz")

	assert.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "bucket=seed-bucket")
	assert.Contains(t, err.Error(), "access denied")
}

func TestFallbackLoader_S3Success(t *testing.T) {
	s3Records := []model.CreateProductRequest{{Name: "From S3"}}
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.CreateProductRequest, error) {
			assert.Equal(t, "catalog/seed.jsonl.gz", path, "S3 key should have prefix")
			return s3Records, nil
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.CreateProductRequest, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", zerolog.Nop())

	records, err := fallback.Load(context.Background(), "seed.jsonl.gz")
	require.NoError(t, err)
	assert.Equal(t, s3Records, records)
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.CreateProductRequest, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	localRecords := []model.CreateProductRequest{{Name: "From disk"}}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.CreateProductRequest, error) {
			assert.Equal(t, "seed.jsonl.gz", path, "local path should not have prefix")
			return localRecords, nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", zerolog.Nop())

	records, err := fallback.Load(context.Background(), "seed.jsonl.gz")
	require.NoError(t, err)
	assert.Equal(t, localRecords, records)
}

func TestFallbackLoader_S3Disabled(t *testing.T) {
	called := false
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.CreateProductRequest, error) {
			called = true
			return []model.CreateProductRequest{}, nil
		},
	}

	fallback := NewFallbackLoader(nil, fileLoader, "catalog/", zerolog.Nop())

	_, err := fallback.Load(context.Background(), "seed.jsonl.gz")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestFallbackLoader_BothFail(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.CreateProductRequest, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) ([]model.CreateProductRequest, error) {
			return nil, errors.New("file not found")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "catalog/", zerolog.Nop())

	records, err := fallback.Load(context.Background(), "seed.jsonl.gz")
	assert.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "file not found")
}
