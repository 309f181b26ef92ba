package repositories

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/hydroscope/hydroscope-backend/models"
)

// ObjectStorageRepository is the slice of S3 the prediction pipeline and the
// diagnostics routes need. AwsS3Repository implements it against the real
// service, AwsS3RepositoryFake against a local directory for development
// without AWS credentials.
type ObjectStorageRepository interface {
	StoreInBucket(ctx context.Context, key string, body io.Reader) error
	ListObjects(ctx context.Context, prefix string) (models.S3ObjectListing, error)
	GetObject(ctx context.Context, key string) (models.Blob, error)
	ObjectPublicUrl(key string) string
}

type AwsS3RepositoryFake struct {
	dir string
}

func NewAwsS3RepositoryFake(dir string) *AwsS3RepositoryFake {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "hydroscope_object_store")
	}
	return &AwsS3RepositoryFake{dir: dir}
}

func (repo *AwsS3RepositoryFake) StoreInBucket(ctx context.Context, key string, body io.Reader) error {
	path := filepath.Join(repo.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "can't open file %s for writing", path)
	}
	defer file.Close()

	_, err = io.Copy(file, body)
	return err
}

func (repo *AwsS3RepositoryFake) ListObjects(ctx context.Context, prefix string) (models.S3ObjectListing, error) {
	listing := models.S3ObjectListing{Bucket: repo.dir, Prefix: prefix, Objects: []models.S3Object{}}

	err := filepath.WalkDir(repo.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(repo.dir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		listing.Objects = append(listing.Objects, models.S3Object{
			Key:          key,
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return listing, nil
	}
	return listing, err
}

func (repo *AwsS3RepositoryFake) GetObject(ctx context.Context, key string) (models.Blob, error) {
	file, err := os.Open(filepath.Join(repo.dir, filepath.FromSlash(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return models.Blob{}, errors.Wrapf(models.NotFoundError, "object %s does not exist", key)
	}
	if err != nil {
		return models.Blob{}, err
	}
	return models.Blob{FileName: key, ReadCloser: file}, nil
}

func (repo *AwsS3RepositoryFake) ObjectPublicUrl(key string) string {
	return "file://" + filepath.Join(repo.dir, filepath.FromSlash(key))
}
