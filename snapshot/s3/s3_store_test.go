package s3

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bitgrid/snapshot"
)

// MockS3Client mocks the Client interface.
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.GetObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.DeleteObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.ListObjectsV2Output), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3Client) UploadPart(ctx context.Context, params *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.UploadPartOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3Client) CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.CreateMultipartUploadOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3Client) CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.CompleteMultipartUploadOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3Client) AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.AbortMultipartUploadOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestStorePut(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "boards")

	var uploaded []byte
	mockClient.On("PutObject", mock.Anything, mock.MatchedBy(func(input *s3.PutObjectInput) bool {
		return *input.Bucket == "test-bucket" && *input.Key == "boards/game-1"
	})).Run(func(args mock.Arguments) {
		input := args.Get(1).(*s3.PutObjectInput)
		uploaded, _ = io.ReadAll(input.Body)
	}).Return(&s3.PutObjectOutput{}, nil).Once()

	err := store.Put(context.Background(), "game-1", []byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), uploaded)
	mockClient.AssertExpectations(t)
}

func TestStoreGet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(MockS3Client)
		store := NewStore(mockClient, "test-bucket", "boards")

		mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
			return *input.Bucket == "test-bucket" && *input.Key == "boards/game-1"
		})).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader("payload")),
		}, nil).Once()

		data, err := store.Get(context.Background(), "game-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), data)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockClient := new(MockS3Client)
		store := NewStore(mockClient, "test-bucket", "boards")

		mockClient.On("GetObject", mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchKey{}).Once()

		_, err := store.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, snapshot.ErrNotFound)
	})
}

func TestStoreList(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "boards/")

	// Page 1
	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return input.ContinuationToken == nil && *input.Prefix == "boards/game-1"
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("token"),
		Contents:              []types.Object{{Key: aws.String("boards/game-1/seq-2")}},
	}, nil).Once()

	// Page 2
	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return input.ContinuationToken != nil && *input.ContinuationToken == "token"
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(false),
		Contents:    []types.Object{{Key: aws.String("boards/game-1/seq-1")}},
	}, nil).Once()

	names, err := store.List(context.Background(), "game-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"game-1/seq-1", "game-1/seq-2"}, names)
}

func TestStoreListEmptyPrefix(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "boards")

	// An empty prefix still lists under "boards/", not "boards", so
	// objects under a sibling root like boards2/ never match.
	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return *input.Prefix == "boards/"
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(false),
		Contents: []types.Object{
			{Key: aws.String("boards/game-1")},
			{Key: aws.String("boards/game-2")},
		},
	}, nil).Once()

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"game-1", "game-2"}, names)
	mockClient.AssertExpectations(t)
}

func TestStoreDelete(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "boards")

	mockClient.On("DeleteObject", mock.Anything, mock.MatchedBy(func(input *s3.DeleteObjectInput) bool {
		return *input.Bucket == "test-bucket" && *input.Key == "boards/game-1"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()

	err := store.Delete(context.Background(), "game-1")
	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}
