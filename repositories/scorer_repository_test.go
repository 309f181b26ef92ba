package repositories

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroscope/hydroscope-backend/models"
)

const scorerTestOutput = `{"water_quality":"Safe","risk_level":"Low",` +
	`"confidence":{"quality":92,"risk":88},"sensor_readings":{"pH":7.1},` +
	`"parameters":{"pH":{"value":7.1,"status":"Normal"}}}`

// The scripts are plain shell run through PythonBin=/bin/sh, which keeps the
// subprocess contract (JSON on stdout, exit code) testable without a Python
// installation.
func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o755))
}

func scorerForTest(t *testing.T, timeout time.Duration, useS3Models bool) (*ScorerRepository, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("scorer tests shell out to /bin/sh")
	}

	dir := t.TempDir()
	return NewScorerRepository(ScorerConfig{
		PythonBin:   "/bin/sh",
		ScriptsDir:  dir,
		Timeout:     timeout,
		UseS3Models: useS3Models,
	}), dir
}

func TestScorerRepositoryScore(t *testing.T) {
	ctx := context.Background()

	t.Run("nominal hybrid run", func(t *testing.T) {
		repo, dir := scorerForTest(t, 5*time.Second, false)
		writeScript(t, dir, "predict.py", "echo '"+scorerTestOutput+"'\n")

		output, err := repo.Score(ctx, models.MethodHybrid, "image.jpg", "data.csv")
		assert.NoError(t, err)
		assert.Equal(t, "Safe", output.WaterQuality)
		assert.Equal(t, "Low", output.RiskLevel)
		assert.Equal(t, 92.0, output.Confidence.Quality)
		assert.Equal(t, 7.1, output.SensorReadings["pH"])
	})

	t.Run("method selects the script", func(t *testing.T) {
		repo, dir := scorerForTest(t, 5*time.Second, false)
		writeScript(t, dir, "predict_image_only.py", "echo '"+scorerTestOutput+"'\n")

		_, err := repo.Score(ctx, models.MethodImageOnly, "image.jpg", "")
		assert.NoError(t, err)

		// No predict.py in the dir, so hybrid cannot run.
		_, err = repo.Score(ctx, models.MethodHybrid, "image.jpg", "data.csv")
		assert.ErrorIs(t, err, models.ErrScorerFailed)
	})

	t.Run("s3 models variant", func(t *testing.T) {
		repo, dir := scorerForTest(t, 5*time.Second, true)
		writeScript(t, dir, "predict_s3.py", "echo '"+scorerTestOutput+"'\n")

		_, err := repo.Score(ctx, models.MethodHybrid, "image.jpg", "data.csv")
		assert.NoError(t, err)
	})

	t.Run("failure with a json error payload", func(t *testing.T) {
		repo, dir := scorerForTest(t, 5*time.Second, false)
		writeScript(t, dir, "predict.py", `echo '{"error":"could not read image"}'; exit 1`+"\n")

		_, err := repo.Score(ctx, models.MethodHybrid, "image.jpg", "data.csv")
		assert.ErrorIs(t, err, models.ErrScorerFailed)
		assert.ErrorContains(t, err, "could not read image")
	})

	t.Run("failure without a payload reports stderr", func(t *testing.T) {
		repo, dir := scorerForTest(t, 5*time.Second, false)
		writeScript(t, dir, "predict.py", "echo 'Traceback: boom' >&2; exit 2\n")

		_, err := repo.Score(ctx, models.MethodHybrid, "image.jpg", "data.csv")
		assert.ErrorIs(t, err, models.ErrScorerFailed)
		assert.ErrorContains(t, err, "Traceback: boom")
	})

	t.Run("undecodable stdout", func(t *testing.T) {
		repo, dir := scorerForTest(t, 5*time.Second, false)
		writeScript(t, dir, "predict.py", "echo 'loading model weights...'\n")

		_, err := repo.Score(ctx, models.MethodHybrid, "image.jpg", "data.csv")
		assert.ErrorIs(t, err, models.ErrInvalidScorerOutput)
	})

	t.Run("output missing the mandatory fields", func(t *testing.T) {
		repo, dir := scorerForTest(t, 5*time.Second, false)
		writeScript(t, dir, "predict.py", `echo '{"water_quality":"Safe"}'`+"\n")

		_, err := repo.Score(ctx, models.MethodHybrid, "image.jpg", "data.csv")
		assert.ErrorIs(t, err, models.ErrInvalidScorerOutput)
	})

	t.Run("timeout kills the subprocess", func(t *testing.T) {
		repo, dir := scorerForTest(t, 100*time.Millisecond, false)
		writeScript(t, dir, "predict.py", "exec sleep 5\n")

		start := time.Now()
		_, err := repo.Score(ctx, models.MethodHybrid, "image.jpg", "data.csv")
		assert.ErrorIs(t, err, models.ErrScorerTimeout)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("unknown method", func(t *testing.T) {
		repo, _ := scorerForTest(t, 5*time.Second, false)

		_, err := repo.Score(ctx, models.PredictionMethod("divination"), "", "")
		assert.Error(t, err)
	})
}

func TestScorerRepositoryCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("interpreter and script present", func(t *testing.T) {
		repo, dir := scorerForTest(t, time.Second, false)
		writeScript(t, dir, "predict.py", "echo ok\n")

		assert.NoError(t, repo.Check(ctx))
	})

	t.Run("missing script", func(t *testing.T) {
		repo, _ := scorerForTest(t, time.Second, false)

		assert.Error(t, repo.Check(ctx))
	})

	t.Run("missing interpreter", func(t *testing.T) {
		dir := t.TempDir()
		repo := NewScorerRepository(ScorerConfig{
			PythonBin:  "definitely-not-a-python",
			ScriptsDir: dir,
			Timeout:    time.Second,
		})

		assert.Error(t, repo.Check(ctx))
	})
}
