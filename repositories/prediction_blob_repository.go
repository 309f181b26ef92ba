package repositories

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
	"gocloud.dev/blob"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/utils"
)

const (
	predictionJsonPrefix       = "predictions/json/"
	predictionCsvPrefix        = "predictions/csv/"
	predictionAggregatedPrefix = "predictions/aggregated/"

	dailyCsvFileName       = "predictions.csv"
	dailyAggregateFileName = "daily_predictions.json"
)

var dailyCsvHeader = []string{
	"id", "timestamp", "water_quality", "risk_level",
	"confidence_quality", "confidence_risk",
	"ph", "temperature", "tds", "do", "turbidity",
	"method", "image_url",
}

// blobPrediction is the stored form of a prediction record. The key casing
// is read back by external dashboards, so it cannot change.
type blobPrediction struct {
	Id           string                   `json:"id"`
	Timestamp    time.Time                `json:"timestamp"`
	WaterQuality string                   `json:"waterQuality"`
	RiskLevel    string                   `json:"riskLevel"`
	Confidence   blobConfidence           `json:"confidence"`
	SensorData   *blobSensorData          `json:"sensorData,omitempty"`
	Parameters   map[string]blobParameter `json:"parameters,omitempty"`
	ImageUrl     string                   `json:"imageUrl,omitempty"`
	Method       string                   `json:"method"`
}

type blobConfidence struct {
	Quality float64 `json:"quality"`
	Risk    float64 `json:"risk"`
}

// Sensor keys keep the scoring script's spelling.
type blobSensorData struct {
	PH          float64 `json:"pH"`          //nolint:tagliatelle
	Temperature float64 `json:"Temperature"` //nolint:tagliatelle
	TDS         float64 `json:"TDS"`         //nolint:tagliatelle
	DO          float64 `json:"DO"`          //nolint:tagliatelle
	Turbidity   float64 `json:"Turbidity"`   //nolint:tagliatelle
}

type blobParameter struct {
	Value  float64 `json:"value"`
	Status string  `json:"status"`
}

type blobDailyAggregate struct {
	Date        string           `json:"date"`
	Count       int              `json:"count"`
	Summary     blobDailySummary `json:"summary"`
	Predictions []blobPrediction `json:"predictions"`
}

type blobDailySummary struct {
	Total             int            `json:"total"`
	Safe              int            `json:"safe"`
	Unsafe            int            `json:"unsafe"`
	RiskLevels        blobRiskLevels `json:"riskLevels"`
	AverageConfidence int            `json:"averageConfidence"`
}

type blobRiskLevels struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

func adaptBlobPrediction(record models.PredictionRecord) blobPrediction {
	out := blobPrediction{
		Id:           record.Id,
		Timestamp:    record.Timestamp,
		WaterQuality: string(record.WaterQuality),
		RiskLevel:    string(record.RiskLevel),
		Confidence:   blobConfidence{Quality: record.Confidence.Quality, Risk: record.Confidence.Risk},
		ImageUrl:     record.ImageUrl,
		Method:       string(record.Method),
	}
	if record.SensorData != nil {
		out.SensorData = &blobSensorData{
			PH:          record.SensorData.PH,
			Temperature: record.SensorData.Temperature,
			TDS:         record.SensorData.TDS,
			DO:          record.SensorData.DO,
			Turbidity:   record.SensorData.Turbidity,
		}
	}
	if record.Parameters != nil {
		out.Parameters = make(map[string]blobParameter, len(record.Parameters))
		for name, p := range record.Parameters {
			out.Parameters[name] = blobParameter{Value: p.Value, Status: p.Status}
		}
	}
	return out
}

func adaptPredictionRecord(stored blobPrediction) models.PredictionRecord {
	record := models.PredictionRecord{
		Id:           stored.Id,
		Timestamp:    stored.Timestamp,
		WaterQuality: models.WaterQuality(stored.WaterQuality),
		RiskLevel:    models.RiskLevel(stored.RiskLevel),
		Confidence:   models.Confidence{Quality: stored.Confidence.Quality, Risk: stored.Confidence.Risk},
		ImageUrl:     stored.ImageUrl,
		Method:       models.PredictionMethod(stored.Method),
	}
	if stored.SensorData != nil {
		record.SensorData = &models.SensorData{
			PH:          stored.SensorData.PH,
			Temperature: stored.SensorData.Temperature,
			TDS:         stored.SensorData.TDS,
			DO:          stored.SensorData.DO,
			Turbidity:   stored.SensorData.Turbidity,
		}
	}
	if stored.Parameters != nil {
		record.Parameters = make(map[string]models.ParameterReading, len(stored.Parameters))
		for name, p := range stored.Parameters {
			record.Parameters[name] = models.ParameterReading{Value: p.Value, Status: p.Status}
		}
	}
	return record
}

// PredictionBlobRepository maintains the derived prediction formats in blob
// storage: one JSON object per record, a daily CSV, and a daily aggregate
// document rewritten in full on each append. All three exist for external
// consumers; nothing in the request path reads them back except analytics.
type PredictionBlobRepository struct {
	blobRepository BlobRepository
	bucketUrl      string
	// serializes the read-modify-write cycle on the per-day objects
	m sync.Mutex
}

func NewPredictionBlobRepository(blobRepository BlobRepository, bucketUrl string) *PredictionBlobRepository {
	return &PredictionBlobRepository{
		blobRepository: blobRepository,
		bucketUrl:      bucketUrl,
	}
}

func recordJsonKey(record models.PredictionRecord) string {
	return predictionJsonPrefix + record.Date() + "/" + record.Id + ".json"
}

func dailyCsvKey(date string) string {
	return predictionCsvPrefix + date + "/" + dailyCsvFileName
}

func dailyAggregateKey(date string) string {
	return predictionAggregatedPrefix + date + "/" + dailyAggregateFileName
}

// StoreRecordJson writes the per-record JSON object.
func (r *PredictionBlobRepository) StoreRecordJson(ctx context.Context, record models.PredictionRecord) error {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "repositories.PredictionBlobRepository.StoreRecordJson")
	defer span.End()

	opts := &blob.WriterOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"prediction-date": record.Date()},
	}
	writer, err := r.blobRepository.OpenStreamWithOptions(ctx, r.bucketUrl, recordJsonKey(record), opts)
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := json.NewEncoder(writer).Encode(adaptBlobPrediction(record)); err != nil {
		return err
	}
	return writer.Close()
}

// AppendDailyCsv rewrites the day's CSV with the record appended. The header
// row is written when the record is the first of its day.
func (r *PredictionBlobRepository) AppendDailyCsv(ctx context.Context, record models.PredictionRecord) error {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "repositories.PredictionBlobRepository.AppendDailyCsv")
	defer span.End()

	r.m.Lock()
	defer r.m.Unlock()

	key := dailyCsvKey(record.Date())

	var buf bytes.Buffer
	existing, err := r.blobRepository.GetBlob(ctx, r.bucketUrl, key)
	switch {
	case err == nil:
		_, err = buf.ReadFrom(existing.ReadCloser)
		existing.ReadCloser.Close()
		if err != nil {
			return errors.Wrapf(err, "failed to read back daily csv %s", key)
		}
	case errors.Is(err, models.NotFoundError):
		w := csv.NewWriter(&buf)
		if err := w.Write(dailyCsvHeader); err != nil {
			return err
		}
		w.Flush()
	default:
		return err
	}

	w := csv.NewWriter(&buf)
	if err := w.Write(csvRow(record)); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	writer, err := r.blobRepository.OpenStreamWithOptions(ctx, r.bucketUrl, key,
		&blob.WriterOptions{ContentType: "text/csv"})
	if err != nil {
		return err
	}
	defer writer.Close()

	if _, err := io.Copy(writer, &buf); err != nil {
		return err
	}
	return writer.Close()
}

func csvRow(record models.PredictionRecord) []string {
	row := []string{
		record.Id,
		record.Timestamp.UTC().Format(time.RFC3339),
		string(record.WaterQuality),
		string(record.RiskLevel),
		strconv.FormatFloat(record.Confidence.Quality, 'f', 2, 64),
		strconv.FormatFloat(record.Confidence.Risk, 'f', 2, 64),
	}
	if record.SensorData != nil {
		row = append(row,
			strconv.FormatFloat(record.SensorData.PH, 'f', -1, 64),
			strconv.FormatFloat(record.SensorData.Temperature, 'f', -1, 64),
			strconv.FormatFloat(record.SensorData.TDS, 'f', -1, 64),
			strconv.FormatFloat(record.SensorData.DO, 'f', -1, 64),
			strconv.FormatFloat(record.SensorData.Turbidity, 'f', -1, 64),
		)
	} else {
		row = append(row, "", "", "", "", "")
	}
	return append(row, string(record.Method), record.ImageUrl)
}

// UpdateDailyAggregate folds the record into its day's aggregate document and
// rewrites the document in full.
func (r *PredictionBlobRepository) UpdateDailyAggregate(ctx context.Context, record models.PredictionRecord) error {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "repositories.PredictionBlobRepository.UpdateDailyAggregate")
	defer span.End()

	r.m.Lock()
	defer r.m.Unlock()

	date := record.Date()
	records, err := r.readDay(ctx, date)
	if err != nil {
		return err
	}
	records = append(records, record)

	summary := models.Summarize(records)
	doc := blobDailyAggregate{
		Date:  date,
		Count: len(records),
		Summary: blobDailySummary{
			Total:  summary.Total,
			Safe:   summary.Safe,
			Unsafe: summary.Unsafe,
			RiskLevels: blobRiskLevels{
				Low:    summary.RiskLevels.Low,
				Medium: summary.RiskLevels.Medium,
				High:   summary.RiskLevels.High,
			},
			AverageConfidence: summary.AverageConfidence,
		},
		Predictions: make([]blobPrediction, 0, len(records)),
	}
	for _, rec := range records {
		doc.Predictions = append(doc.Predictions, adaptBlobPrediction(rec))
	}

	writer, err := r.blobRepository.OpenStreamWithOptions(ctx, r.bucketUrl, dailyAggregateKey(date),
		&blob.WriterOptions{ContentType: "application/json"})
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := json.NewEncoder(writer).Encode(doc); err != nil {
		return err
	}
	return writer.Close()
}

// ReadDay returns the records of one aggregate document, or an empty slice
// when the day has none. Transient read failures are retried.
func (r *PredictionBlobRepository) ReadDay(ctx context.Context, date string) ([]models.PredictionRecord, error) {
	var records []models.PredictionRecord
	err := retry.Do(
		func() error {
			var err error
			records, err = r.readDay(ctx, date)
			return err
		},
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.Delay(100*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
	)
	return records, err
}

func (r *PredictionBlobRepository) readDay(ctx context.Context, date string) ([]models.PredictionRecord, error) {
	file, err := r.blobRepository.GetBlob(ctx, r.bucketUrl, dailyAggregateKey(date))
	if errors.Is(err, models.NotFoundError) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.ReadCloser.Close()

	var doc blobDailyAggregate
	if err := json.NewDecoder(file.ReadCloser).Decode(&doc); err != nil {
		return nil, errors.Wrapf(err, "failed to decode daily aggregate for %s", date)
	}

	records := make([]models.PredictionRecord, 0, len(doc.Predictions))
	for _, stored := range doc.Predictions {
		records = append(records, adaptPredictionRecord(stored))
	}
	return records, nil
}

// ListDates returns the days having an aggregate document, ascending.
func (r *PredictionBlobRepository) ListDates(ctx context.Context) ([]string, error) {
	keys, err := r.blobRepository.ListFiles(ctx, r.bucketUrl, predictionAggregatedPrefix)
	if err != nil {
		return nil, err
	}

	var dates []string
	for _, key := range keys {
		rest := strings.TrimPrefix(key, predictionAggregatedPrefix)
		date, _, found := strings.Cut(rest, "/")
		if !found || date == "" {
			continue
		}
		if !slices.Contains(dates, date) {
			dates = append(dates, date)
		}
	}
	slices.Sort(dates)
	return dates, nil
}

// FindRecord scans aggregate documents newest day first for the record.
func (r *PredictionBlobRepository) FindRecord(ctx context.Context, id string) (models.PredictionRecord, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "repositories.PredictionBlobRepository.FindRecord")
	defer span.End()

	dates, err := r.ListDates(ctx)
	if err != nil {
		return models.PredictionRecord{}, err
	}

	for i := len(dates) - 1; i >= 0; i-- {
		records, err := r.readDay(ctx, dates[i])
		if err != nil {
			return models.PredictionRecord{}, err
		}
		for _, record := range records {
			if record.Id == id {
				return record, nil
			}
		}
	}

	return models.PredictionRecord{}, errors.Wrapf(models.ErrPredictionNotFound,
		"prediction %s not found in blob storage", id)
}
