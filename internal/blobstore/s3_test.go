package blobstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockS3Client is a mock implementation of S3API.
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestS3Store_Put(t *testing.T) {
	client := new(MockS3Client)
	store := NewS3WithClient(client, "photos", "productos", zap.NewNop())

	var body []byte
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "photos" &&
			aws.ToString(in.Key) == "productos/abc-photo.png" &&
			aws.ToString(in.ContentType) == "image/png"
	})).Run(func(args mock.Arguments) {
		body, _ = io.ReadAll(args.Get(1).(*s3.PutObjectInput).Body)
	}).Return(&s3.PutObjectOutput{}, nil).Once()

	err := store.Put(context.Background(), "abc-photo.png", strings.NewReader("png-bytes"))

	assert.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
	client.AssertExpectations(t)
}

func TestS3Store_PutError(t *testing.T) {
	client := new(MockS3Client)
	store := NewS3WithClient(client, "photos", "", zap.NewNop())

	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied")).Once()

	err := store.Put(context.Background(), "photo.png", strings.NewReader("x"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	client.AssertExpectations(t)
}

func TestS3Store_RejectsInvalidNames(t *testing.T) {
	client := new(MockS3Client)
	store := NewS3WithClient(client, "photos", "", zap.NewNop())

	err := store.Put(context.Background(), "../photo.png", strings.NewReader("x"))

	assert.ErrorIs(t, err, ErrInvalidName)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}
