package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/utils"
)

const (
	scorerScriptHybrid     = "predict.py"
	scorerScriptHybridS3   = "predict_s3.py"
	scorerScriptImageOnly  = "predict_image_only.py"
	scorerScriptSensorOnly = "predict_sensor_only.py"

	// stderr is free-form diagnostics from the scoring scripts, only useful
	// truncated in error messages.
	scorerStderrExcerptLen = 500
)

type ScorerConfig struct {
	PythonBin  string
	ScriptsDir string
	Timeout    time.Duration
	// Use the script variant that pulls model weights from S3 for hybrid
	// scoring instead of loading them from disk.
	UseS3Models bool
}

// ScorerRepository runs the Python scoring scripts as one-shot subprocesses.
// The contract: input file paths as arguments, a single JSON document on
// stdout, progress diagnostics on stderr. On failure the scripts print
// {"error": "..."} to stdout and exit non-zero.
type ScorerRepository struct {
	config ScorerConfig
}

func NewScorerRepository(config ScorerConfig) *ScorerRepository {
	return &ScorerRepository{config: config}
}

func (repo *ScorerRepository) scriptFor(method models.PredictionMethod) (string, error) {
	switch method {
	case models.MethodHybrid:
		if repo.config.UseS3Models {
			return scorerScriptHybridS3, nil
		}
		return scorerScriptHybrid, nil
	case models.MethodImageOnly:
		return scorerScriptImageOnly, nil
	case models.MethodSensorOnly:
		return scorerScriptSensorOnly, nil
	default:
		return "", errors.Newf("no scoring script for method %q", method)
	}
}

// Score runs the script matching the method and decodes its output. The
// subprocess is killed when the timeout elapses.
func (repo *ScorerRepository) Score(ctx context.Context, method models.PredictionMethod,
	imagePath, csvPath string,
) (models.ScorerOutput, error) {
	logger := utils.LoggerFromContext(ctx)

	script, err := repo.scriptFor(method)
	if err != nil {
		return models.ScorerOutput{}, err
	}

	args := []string{filepath.Join(repo.config.ScriptsDir, script)}
	switch method {
	case models.MethodImageOnly:
		args = append(args, imagePath)
	case models.MethodSensorOnly:
		args = append(args, csvPath)
	default:
		args = append(args, imagePath, csvPath)
	}

	ctx, cancel := context.WithTimeout(ctx, repo.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, repo.config.PythonBin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.DebugContext(ctx, "running scorer", "script", script, "method", string(method))
	runErr := cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return models.ScorerOutput{}, errors.Wrapf(models.ErrScorerTimeout,
			"scorer %s exceeded %s", script, repo.config.Timeout)
	}

	if runErr != nil {
		// Failed runs still print a JSON document to stdout carrying the
		// error message, provided the interpreter got far enough.
		if msg := gjson.GetBytes(stdout.Bytes(), "error"); msg.Exists() {
			return models.ScorerOutput{}, errors.Wrapf(models.ErrScorerFailed,
				"scorer %s: %s", script, msg.String())
		}
		return models.ScorerOutput{}, errors.Wrapf(models.ErrScorerFailed,
			"scorer %s: %v: %s", script, runErr, stderrExcerpt(stderr.Bytes()))
	}

	var output models.ScorerOutput
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &output); err != nil {
		return models.ScorerOutput{}, errors.Wrapf(models.ErrInvalidScorerOutput,
			"scorer %s printed undecodable output: %v", script, err)
	}
	if output.WaterQuality == "" || output.RiskLevel == "" {
		return models.ScorerOutput{}, errors.Wrapf(models.ErrInvalidScorerOutput,
			"scorer %s output is missing water_quality or risk_level", script)
	}

	return output, nil
}

// Check verifies the interpreter and the hybrid entry script are present.
func (repo *ScorerRepository) Check(ctx context.Context) error {
	if _, err := exec.LookPath(repo.config.PythonBin); err != nil {
		return errors.Wrapf(err, "scorer interpreter %s not found", repo.config.PythonBin)
	}
	script := filepath.Join(repo.config.ScriptsDir, scorerScriptHybrid)
	if _, err := os.Stat(script); err != nil {
		return errors.Wrapf(err, "scoring script %s not found", script)
	}
	return nil
}

func stderrExcerpt(stderr []byte) string {
	excerpt := strings.TrimSpace(string(stderr))
	if len(excerpt) > scorerStderrExcerptLen {
		excerpt = excerpt[:scorerStderrExcerptLen]
	}
	if excerpt == "" {
		excerpt = "(empty stderr)"
	}
	return excerpt
}
