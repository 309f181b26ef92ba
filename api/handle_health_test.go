package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroscope/hydroscope-backend/repositories"
	"github.com/hydroscope/hydroscope-backend/repositories/idp"
	"github.com/hydroscope/hydroscope-backend/usecases"
)

func TestHandleHealth(t *testing.T) {
	t.Run("bare deployment reports degraded components", func(t *testing.T) {
		// No bucket, no identity provider, no scorer installation: the probe
		// still answers 200 and reports per component.
		router := newTestRouter(t, testConfiguration(), testRepositories())

		request := httptest.NewRequest(http.MethodGet, "https://hydroscope.io/health", nil)

		r := httptest.NewRecorder()
		router.ServeHTTP(r, request)

		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{
			"statuses": [
				{"name": "scorer", "status": false},
				{"name": "identity_provider", "status": false}
			]
		}`, r.Body.String())
	})

	t.Run("fully configured deployment", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("the scorer probe shells out to /bin/sh")
		}

		scriptsDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(scriptsDir, "predict.py"), []byte("echo ok\n"), 0o755))

		repos := testRepositories(
			repositories.WithScorer(repositories.ScorerConfig{
				PythonBin:  "/bin/sh",
				ScriptsDir: scriptsDir,
				Timeout:    time.Second,
			}),
			repositories.WithCognitoClient(idp.NewCognitoClient("client-1", "", nil)),
		)
		router := newTestRouter(t, testConfiguration(), repos,
			usecases.WithPredictionBucketUrl("mem://"))

		request := httptest.NewRequest(http.MethodGet, "https://hydroscope.io/health", nil)

		r := httptest.NewRecorder()
		router.ServeHTTP(r, request)

		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{
			"statuses": [
				{"name": "blob_store", "status": true},
				{"name": "scorer", "status": true},
				{"name": "identity_provider", "status": true}
			]
		}`, r.Body.String())
	})
}
