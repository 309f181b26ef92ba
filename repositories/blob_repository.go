package repositories

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/utils"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

type BlobRepository interface {
	GetBlob(ctx context.Context, bucketUrl, fileName string) (models.Blob, error)
	OpenStream(ctx context.Context, bucketUrl, key, fileName string) (io.WriteCloser, error)
	OpenStreamWithOptions(ctx context.Context, bucketUrl, key string, opts *blob.WriterOptions) (io.WriteCloser, error)
	DeleteFile(ctx context.Context, bucketUrl, fileName string) error
	ListFiles(ctx context.Context, bucketUrl, prefix string) ([]string, error)
	CheckAccess(ctx context.Context, bucketUrl string) error
}

type blobRepository struct {
	buckets map[string]*blob.Bucket
	m       sync.Mutex
}

func NewBlobRepository() BlobRepository {
	return &blobRepository{
		buckets: make(map[string]*blob.Bucket),
	}
}

func (repository *blobRepository) openBlobBucket(ctx context.Context, bucketUrl string) (*blob.Bucket, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(
		ctx,
		"repositories.BlobRepository.openBlobBucket",
		trace.WithAttributes(attribute.String("bucket", bucketUrl)),
	)
	defer span.End()

	if repository.buckets[bucketUrl] == nil {
		repository.m.Lock()
		defer repository.m.Unlock()

		bucket, err := blob.OpenBucket(ctx, bucketUrl)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open bucket %s", bucketUrl)
		}

		ok, err := bucket.IsAccessible(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to check bucket accessibility %s", bucketUrl)
		} else if !ok {
			return nil, errors.Newf("bucket %s is not accessible", bucketUrl)
		}

		repository.buckets[bucketUrl] = bucket
	}
	return repository.buckets[bucketUrl], nil
}

func (repository *blobRepository) GetBlob(ctx context.Context, bucketUrl, fileName string) (models.Blob, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(
		ctx,
		"repositories.BlobRepository.GetBlob",
		trace.WithAttributes(attribute.String("bucket", bucketUrl)),
		trace.WithAttributes(attribute.String("fileName", fileName)),
	)
	defer span.End()
	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return models.Blob{}, err
	}

	ok, err := bucket.Exists(ctx, fileName)
	if err != nil {
		return models.Blob{}, errors.Wrapf(err, "failed to check if file %s exists in bucket %s", fileName, bucketUrl)
	} else if !ok {
		return models.Blob{}, errors.Wrapf(
			models.NotFoundError,
			"file %s does not exist in bucket %s", fileName, bucketUrl,
		)
	}

	reader, err := bucket.NewReader(ctx, fileName, nil)
	if err != nil {
		return models.Blob{}, errors.Wrapf(err, "failed to read object %s/%s", bucketUrl, fileName)
	}

	return models.Blob{FileName: fileName, ReadCloser: reader}, nil
}

func (repository *blobRepository) OpenStream(ctx context.Context, bucketUrl, key, fileName string) (io.WriteCloser, error) {
	var opts *blob.WriterOptions
	if fileName != "" {
		opts = &blob.WriterOptions{
			ContentDisposition: fmt.Sprintf("attachment; filename=\"%s\"", fileName),
		}
	}
	return repository.OpenStreamWithOptions(ctx, bucketUrl, key, opts)
}

func (repository *blobRepository) OpenStreamWithOptions(ctx context.Context, bucketUrl, key string,
	opts *blob.WriterOptions,
) (io.WriteCloser, error) {
	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return nil, err
	}

	return bucket.NewWriter(ctx, key, opts)
}

// CheckAccess re-probes bucket accessibility, bypassing the cached handle's
// assumption that a bucket opened once stays reachable.
func (repository *blobRepository) CheckAccess(ctx context.Context, bucketUrl string) error {
	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return err
	}

	ok, err := bucket.IsAccessible(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to check bucket accessibility %s", bucketUrl)
	} else if !ok {
		return errors.Newf("bucket %s is not accessible", bucketUrl)
	}
	return nil
}

func (repository *blobRepository) DeleteFile(ctx context.Context, bucketUrl, fileName string) error {
	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	return bucket.Delete(ctx, fileName)
}

func (repository *blobRepository) ListFiles(ctx context.Context, bucketUrl, prefix string) ([]string, error) {
	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return nil, err
	}

	files := bucket.List(&blob.ListOptions{
		Prefix: prefix,
	})

	var keys []string
	for {
		file, err := files.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list objects under %s in bucket %s", prefix, bucketUrl)
		}

		keys = append(keys, file.Key)
	}

	return keys, nil
}
