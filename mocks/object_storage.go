package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/hydroscope/hydroscope-backend/models"
)

type ObjectStorage struct {
	mock.Mock
}

func (s *ObjectStorage) StoreInBucket(ctx context.Context, key string, body io.Reader) error {
	args := s.Called(key, body)
	return args.Error(0)
}

func (s *ObjectStorage) ListObjects(ctx context.Context, prefix string) (models.S3ObjectListing, error) {
	args := s.Called(prefix)
	return args.Get(0).(models.S3ObjectListing), args.Error(1)
}

func (s *ObjectStorage) GetObject(ctx context.Context, key string) (models.Blob, error) {
	args := s.Called(key)
	return args.Get(0).(models.Blob), args.Error(1)
}

func (s *ObjectStorage) ObjectPublicUrl(key string) string {
	args := s.Called(key)
	return args.String(0)
}
