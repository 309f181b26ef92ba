package repositories

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/utils"
)

const s3ListPageSize = 100

// AwsS3Repository talks to S3 through the AWS SDK directly, for the
// operations the portable blob layer does not cover: multipart uploads,
// raw object listing for the diagnostics routes, and public URLs.
type AwsS3Repository struct {
	// You can create goroutines that concurrently use the same service client to send multiple requests.
	// source: https://aws.github.io/aws-sdk-go-v2/docs/making-requests/
	s3Client *s3.Client
	bucket   string
	region   string
}

func NewAwsS3Repository(s3Client *s3.Client, bucket, region string) *AwsS3Repository {
	return &AwsS3Repository{
		s3Client: s3Client,
		bucket:   bucket,
		region:   region,
	}
}

func (repo *AwsS3Repository) StoreInBucket(ctx context.Context, key string, body io.Reader) error {
	logger := utils.LoggerFromContext(ctx)
	uploader := manager.NewUploader(repo.s3Client)

	location, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(repo.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return errors.Wrapf(err, "could not upload object to %s:%s", repo.bucket, key)
	}

	logger.DebugContext(ctx, fmt.Sprintf("Successfully uploaded object to %s", location.Location))
	return nil
}

func (repo *AwsS3Repository) ListObjects(ctx context.Context, prefix string) (models.S3ObjectListing, error) {
	out, err := repo.s3Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(repo.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(s3ListPageSize),
	})
	if err != nil {
		return models.S3ObjectListing{}, errors.Wrapf(err, "could not list objects in %s under %q", repo.bucket, prefix)
	}

	listing := models.S3ObjectListing{
		Bucket:    repo.bucket,
		Prefix:    prefix,
		Objects:   make([]models.S3Object, 0, len(out.Contents)),
		Truncated: aws.ToBool(out.IsTruncated),
	}
	for _, obj := range out.Contents {
		listing.Objects = append(listing.Objects, models.S3Object{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
		})
	}

	return listing, nil
}

func (repo *AwsS3Repository) GetObject(ctx context.Context, key string) (models.Blob, error) {
	out, err := repo.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(repo.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *s3types.NoSuchKey
		if errors.As(err, &notFound) {
			return models.Blob{}, errors.Wrapf(models.NotFoundError,
				"object %s does not exist in bucket %s", key, repo.bucket)
		}
		return models.Blob{}, errors.Wrapf(err, "could not get object %s from %s", key, repo.bucket)
	}

	return models.Blob{FileName: key, ReadCloser: out.Body}, nil
}

// ObjectPublicUrl builds the virtual-hosted URL of an object. The target
// bucket allows public reads on the prediction images prefix.
func (repo *AwsS3Repository) ObjectPublicUrl(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", repo.bucket, repo.region, key)
}
