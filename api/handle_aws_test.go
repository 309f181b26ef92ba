package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroscope/hydroscope-backend/dto"
	"github.com/hydroscope/hydroscope-backend/repositories"
)

func awsTestRouter(t *testing.T) http.Handler {
	t.Helper()

	fake := repositories.NewAwsS3RepositoryFake(t.TempDir())
	require.NoError(t, fake.StoreInBucket(context.Background(),
		"predictions/daily/2025-06-10.csv", strings.NewReader("id,timestamp\np1,2025-06-10T10:00:00Z\n")))
	require.NoError(t, fake.StoreInBucket(context.Background(),
		"models/weights.bin", strings.NewReader("weights")))

	return newTestRouter(t, testConfiguration(),
		testRepositories(repositories.WithObjectStorage(fake)))
}

func TestHandleListS3Objects(t *testing.T) {
	router := awsTestRouter(t)

	t.Run("nominal", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "https://hydroscope.io/aws/s3/list", nil)

		r := httptest.NewRecorder()
		router.ServeHTTP(r, request)

		assert.Equal(t, http.StatusOK, r.Code)

		var body struct {
			Success bool                   `json:"success"`
			Listing dto.S3ObjectListingDto `json:"listing"`
		}
		require.NoError(t, json.Unmarshal(r.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Len(t, body.Listing.Objects, 2)
	})

	t.Run("prefix filter", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet,
			"https://hydroscope.io/aws/s3/list?prefix=predictions/", nil)

		r := httptest.NewRecorder()
		router.ServeHTTP(r, request)

		var body struct {
			Listing dto.S3ObjectListingDto `json:"listing"`
		}
		require.NoError(t, json.Unmarshal(r.Body.Bytes(), &body))
		require.Len(t, body.Listing.Objects, 1)
		assert.Equal(t, "predictions/daily/2025-06-10.csv", body.Listing.Objects[0].Key)
		assert.Equal(t, "predictions/", body.Listing.Prefix)
	})
}

func TestHandleDownloadS3Object(t *testing.T) {
	router := awsTestRouter(t)

	t.Run("nominal", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet,
			"https://hydroscope.io/aws/s3/download/predictions/daily/2025-06-10.csv", nil)

		r := httptest.NewRecorder()
		router.ServeHTTP(r, request)

		assert.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, "application/octet-stream", r.Header().Get("Content-Type"))
		assert.Contains(t, r.Header().Get("Content-Disposition"), "2025-06-10.csv")
		assert.Contains(t, r.Body.String(), "p1,2025-06-10T10:00:00Z")
	})

	t.Run("unknown key", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet,
			"https://hydroscope.io/aws/s3/download/nope.csv", nil)

		r := httptest.NewRecorder()
		router.ServeHTTP(r, request)

		assert.Equal(t, http.StatusNotFound, r.Code)
	})
}

// The dynamodb routes need a real client; without one they refuse upfront
// instead of panicking mid-request.
func TestHandleDynamoWithoutClient(t *testing.T) {
	router := newTestRouter(t, testConfiguration(), testRepositories())

	paths := []string{
		"/aws/dynamodb/tables",
		"/aws/dynamodb/tables/predictions",
		"/aws/dynamodb/tables/predictions/scan",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "https://hydroscope.io"+path, nil)

			r := httptest.NewRecorder()
			router.ServeHTTP(r, request)

			assert.Equal(t, http.StatusUnprocessableEntity, r.Code)
			assert.Contains(t, r.Body.String(), `"success":false`)
		})
	}
}

func TestHandleScanDynamoTableBadLimit(t *testing.T) {
	router := newTestRouter(t, testConfiguration(), testRepositories())

	request := httptest.NewRequest(http.MethodGet,
		"https://hydroscope.io/aws/dynamodb/tables/predictions/scan?limit=lots", nil)

	r := httptest.NewRecorder()
	router.ServeHTTP(r, request)

	assert.Equal(t, http.StatusBadRequest, r.Code)
}
