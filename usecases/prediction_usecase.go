package usecases

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/hashicorp/go-set/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/repositories/clock"
	"github.com/hydroscope/hydroscope-backend/usecases/tracking"
	"github.com/hydroscope/hydroscope-backend/utils"
)

const (
	DefaultMaxBatchImages         = 10
	defaultHistoryPageSize        = 50
	predictionImageKeyPrefix      = "predictions/images/"
	bestEffortWriteImageUpload    = "image_upload"
	bestEffortWriteRecordJson     = "record_json"
	bestEffortWriteDailyCsv       = "daily_csv"
	bestEffortWriteDailyAggregate = "daily_aggregate"
)

var allowedImageExtensions = set.From([]string{".jpg", ".jpeg", ".png"})

type predictionScorer interface {
	Score(ctx context.Context, method models.PredictionMethod, imagePath, csvPath string) (models.ScorerOutput, error)
}

type predictionLocalStore interface {
	AddPrediction(record models.PredictionRecord)
	GetPrediction(id string) (models.PredictionRecord, error)
	ListPredictions(limit, offset int) ([]models.PredictionRecord, int)
}

type predictionImageStore interface {
	StoreInBucket(ctx context.Context, key string, body io.Reader) error
	ObjectPublicUrl(key string) string
}

type predictionDerivedWriter interface {
	StoreRecordJson(ctx context.Context, record models.PredictionRecord) error
	AppendDailyCsv(ctx context.Context, record models.PredictionRecord) error
	UpdateDailyAggregate(ctx context.Context, record models.PredictionRecord) error
}

// PredictionInput is one submission: an image, a csv of sensor values, or
// both. Which files are present decides the scoring method.
type PredictionInput struct {
	Image *multipart.FileHeader
	Csv   *multipart.FileHeader
}

type PredictionUsecase struct {
	clock      clock.Clock
	scorer     predictionScorer
	localStore predictionLocalStore
	imageStore predictionImageStore
	// nil when blob storage is not configured; derived formats are then
	// skipped and only the local store is written.
	derivedWriter  predictionDerivedWriter
	tempDir        string
	maxBatchImages int
}

func methodForInput(input PredictionInput) (models.PredictionMethod, error) {
	switch {
	case input.Image != nil && input.Csv != nil:
		return models.MethodHybrid, nil
	case input.Image != nil:
		return models.MethodImageOnly, nil
	case input.Csv != nil:
		return models.MethodSensorOnly, nil
	default:
		return "", errors.WithStack(models.ErrNoPredictionInput)
	}
}

func validateImageUpload(fileHeader *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions.Contains(ext) {
		return errors.Wrapf(models.BadParameterError,
			"unsupported image type %q, accepted: jpg, jpeg, png", ext)
	}
	return nil
}

// CreatePrediction runs the full pipeline for a single submission: choose
// the scoring method, stage the uploads as temp files, run the scorer, then
// persist. The local store write is the durability backstop; the image
// upload and the three derived blob writes are best-effort and reported,
// never fatal.
func (uc PredictionUsecase) CreatePrediction(ctx context.Context, input PredictionInput) (
	models.PredictionRecord, models.PredictionStorageReport, error,
) {
	method, err := methodForInput(input)
	if err != nil {
		return models.PredictionRecord{}, models.PredictionStorageReport{}, err
	}

	var imagePath, csvPath, imageFileName string
	if input.Image != nil {
		if err := validateImageUpload(input.Image); err != nil {
			return models.PredictionRecord{}, models.PredictionStorageReport{}, err
		}
		path, cleanup, err := uc.stageUpload(ctx, input.Image)
		if err != nil {
			return models.PredictionRecord{}, models.PredictionStorageReport{}, err
		}
		defer cleanup()
		imagePath = path
		imageFileName = input.Image.Filename
	}
	if input.Csv != nil {
		path, cleanup, err := uc.stageUpload(ctx, input.Csv)
		if err != nil {
			return models.PredictionRecord{}, models.PredictionStorageReport{}, err
		}
		defer cleanup()
		csvPath = path
	}

	return uc.scoreAndPersist(ctx, method, imageFileName, imagePath, csvPath)
}

// CreateBatchPredictions scores every image against the same csv in hybrid
// mode, sequentially. The batch aborts on the first scorer failure; records
// persisted before the failure remain.
func (uc PredictionUsecase) CreateBatchPredictions(ctx context.Context,
	images []*multipart.FileHeader, csv *multipart.FileHeader,
) ([]models.PredictionRecord, error) {
	if len(images) == 0 || csv == nil {
		return nil, errors.Wrap(models.BadParameterError,
			"batch prediction requires both images and a csv file")
	}
	if len(images) > uc.maxBatchImages {
		return nil, errors.Wrapf(models.BadParameterError,
			"batch prediction accepts at most %d images", uc.maxBatchImages)
	}
	for _, image := range images {
		if err := validateImageUpload(image); err != nil {
			return nil, err
		}
	}

	csvPath, cleanupCsv, err := uc.stageUpload(ctx, csv)
	if err != nil {
		return nil, err
	}
	defer cleanupCsv()

	records := make([]models.PredictionRecord, 0, len(images))
	for _, image := range images {
		imagePath, cleanupImage, err := uc.stageUpload(ctx, image)
		if err != nil {
			return nil, err
		}

		record, _, err := uc.scoreAndPersist(ctx, models.MethodHybrid, image.Filename, imagePath, csvPath)
		cleanupImage()
		if err != nil {
			return nil, errors.Wrapf(err, "batch aborted at image %d of %d", len(records)+1, len(images))
		}
		records = append(records, record)
	}

	tracking.TrackEvent(ctx, models.AnalyticsBatchPredictionCreated, map[string]any{
		"count": len(records),
	})

	return records, nil
}

func (uc PredictionUsecase) scoreAndPersist(ctx context.Context, method models.PredictionMethod,
	imageFileName, imagePath, csvPath string,
) (models.PredictionRecord, models.PredictionStorageReport, error) {
	logger := utils.LoggerFromContext(ctx)

	scoreStart := time.Now()
	output, err := uc.scorer.Score(ctx, method, imagePath, csvPath)
	if err != nil {
		utils.MetricScorerFailures.
			With(prometheus.Labels{"reason": scorerFailureReason(err)}).
			Inc()
		return models.PredictionRecord{}, models.PredictionStorageReport{}, err
	}
	scoreDuration := time.Since(scoreStart)

	record := models.PredictionRecord{
		Id:           uuid.NewString(),
		Timestamp:    uc.clock.Now().UTC(),
		WaterQuality: models.WaterQuality(output.WaterQuality),
		RiskLevel:    models.RiskLevel(output.RiskLevel),
		Confidence: models.Confidence{
			Quality: output.Confidence.Quality,
			Risk:    output.Confidence.Risk,
		},
		SensorData: output.AsSensorData(),
		Parameters: output.AsParameters(),
		Method:     method,
	}

	report := models.PredictionStorageReport{BestEffort: map[string]error{}}

	if imagePath != "" {
		key := predictionImageKeyPrefix + record.Id + strings.ToLower(filepath.Ext(imageFileName))
		if err := uc.uploadImage(ctx, key, imagePath); err != nil {
			report.BestEffort[bestEffortWriteImageUpload] = err
			utils.MetricBlobWriteFailures.With(prometheus.Labels{"kind": bestEffortWriteImageUpload}).Inc()
			logger.WarnContext(ctx, "best-effort image upload failed",
				"prediction_id", record.Id, "error", err.Error())
		} else {
			record.ImageUrl = uc.imageStore.ObjectPublicUrl(key)
		}
	}

	uc.localStore.AddPrediction(record)
	report.DurableWrite = true

	uc.writeDerivedFormats(ctx, record, &report)

	utils.MetricPredictionCount.With(prometheus.Labels{"method": string(method)}).Inc()
	utils.MetricScorerLatency.With(prometheus.Labels{"method": string(method)}).Observe(scoreDuration.Seconds())

	tracking.TrackEvent(ctx, models.AnalyticsPredictionCreated, map[string]any{
		"prediction_id": record.Id,
		"method":        string(method),
		"water_quality": string(record.WaterQuality),
	})

	if failed := report.FailedWrites(); len(failed) > 0 {
		logger.WarnContext(ctx,
			fmt.Sprintf("created prediction %s with failed best-effort writes", record.Id),
			"failed_writes", failed)
	} else {
		logger.InfoContext(ctx,
			fmt.Sprintf("created prediction %s in %dms", record.Id, scoreDuration.Milliseconds()))
	}

	return record, report, nil
}

// writeDerivedFormats fans the three derived blob writes out concurrently.
// Each write's failure is recorded independently; none aborts the others.
func (uc PredictionUsecase) writeDerivedFormats(ctx context.Context,
	record models.PredictionRecord, report *models.PredictionStorageReport,
) {
	if uc.derivedWriter == nil {
		return
	}
	logger := utils.LoggerFromContext(ctx)

	writes := []struct {
		name string
		fn   func(context.Context, models.PredictionRecord) error
	}{
		{bestEffortWriteRecordJson, uc.derivedWriter.StoreRecordJson},
		{bestEffortWriteDailyCsv, uc.derivedWriter.AppendDailyCsv},
		{bestEffortWriteDailyAggregate, uc.derivedWriter.UpdateDailyAggregate},
	}

	writeErrs := make([]error, len(writes))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, write := range writes {
		group.Go(func() error {
			writeErrs[i] = write.fn(groupCtx, record)
			return nil
		})
	}
	// goroutines stash their errors instead of returning them, so every
	// write always runs
	_ = group.Wait()

	for i, write := range writes {
		if writeErrs[i] == nil {
			continue
		}
		report.BestEffort[write.name] = writeErrs[i]
		utils.MetricBlobWriteFailures.With(prometheus.Labels{"kind": write.name}).Inc()
		logger.WarnContext(ctx, "best-effort derived write failed",
			"prediction_id", record.Id, "write", write.name, "error", writeErrs[i].Error())
	}
}

func (uc PredictionUsecase) uploadImage(ctx context.Context, key, imagePath string) error {
	file, err := os.Open(imagePath)
	if err != nil {
		return errors.Wrap(err, "failed to reopen staged image")
	}
	defer file.Close()

	return uc.imageStore.StoreInBucket(ctx, key, file)
}

// stageUpload copies a multipart upload to a temp file the scorer can read
// by absolute path. Cleanup failures are logged, never surfaced.
func (uc PredictionUsecase) stageUpload(ctx context.Context, fileHeader *multipart.FileHeader) (string, func(), error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", nil, errors.Wrapf(err, "failed to open upload %s", fileHeader.Filename)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	tmp, err := os.CreateTemp(uc.tempDir, "upload-*"+ext)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to create temp file for upload")
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, errors.Wrapf(err, "failed to stage upload %s", fileHeader.Filename)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, errors.Wrapf(err, "failed to stage upload %s", fileHeader.Filename)
	}

	cleanup := func() {
		if err := os.Remove(tmp.Name()); err != nil {
			utils.LoggerFromContext(ctx).DebugContext(ctx, "failed to remove staged upload",
				"path", tmp.Name(), "error", err.Error())
		}
	}
	return tmp.Name(), cleanup, nil
}

func scorerFailureReason(err error) string {
	switch {
	case errors.Is(err, models.ErrScorerTimeout):
		return "timeout"
	case errors.Is(err, models.ErrInvalidScorerOutput):
		return "invalid_output"
	default:
		return "failed"
	}
}

// ListPredictionHistory pages through the local store, newest first.
func (uc PredictionUsecase) ListPredictionHistory(ctx context.Context, limit, offset int) ([]models.PredictionRecord, int) {
	if limit <= 0 {
		limit = defaultHistoryPageSize
	}
	return uc.localStore.ListPredictions(limit, offset)
}

func (uc PredictionUsecase) GetPrediction(ctx context.Context, id string) (models.PredictionRecord, error) {
	return uc.localStore.GetPrediction(id)
}
