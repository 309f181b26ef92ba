package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type BlobChecker struct {
	mock.Mock
}

func (c *BlobChecker) CheckAccess(ctx context.Context, bucketUrl string) error {
	args := c.Called(bucketUrl)
	return args.Error(0)
}
