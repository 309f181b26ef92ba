package usecases

import (
	"context"
	"slices"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/repositories/clock"
	"github.com/hydroscope/hydroscope-backend/utils"
)

const defaultDashboardDays = 7

// AnalyticsSource answers "the prediction records of the last N days".
// Implementations tag their answers with the backing store that produced
// them, since the tag is part of the API contract.
type AnalyticsSource interface {
	Records(ctx context.Context, days int) ([]models.PredictionRecord, models.DataSource, error)
	Dates(ctx context.Context) ([]string, models.DataSource, error)
	Find(ctx context.Context, id string) (models.PredictionRecord, models.DataSource, error)
}

type analyticsBlobReader interface {
	ReadDay(ctx context.Context, date string) ([]models.PredictionRecord, error)
	ListDates(ctx context.Context) ([]string, error)
	FindRecord(ctx context.Context, id string) (models.PredictionRecord, error)
}

type analyticsLocalReader interface {
	PredictionsSince(cutoff time.Time) []models.PredictionRecord
	AllPredictions() []models.PredictionRecord
}

// blobAnalyticsSource reads the daily aggregate documents day by day.
type blobAnalyticsSource struct {
	reader analyticsBlobReader
	clock  clock.Clock
}

func newBlobAnalyticsSource(reader analyticsBlobReader, clock clock.Clock) blobAnalyticsSource {
	return blobAnalyticsSource{reader: reader, clock: clock}
}

func (s blobAnalyticsSource) Records(ctx context.Context, days int) ([]models.PredictionRecord, models.DataSource, error) {
	now := s.clock.Now().UTC()

	var records []models.PredictionRecord
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -i).Format(time.DateOnly)
		dayRecords, err := s.reader.ReadDay(ctx, date)
		if err != nil {
			return nil, models.DataSourceS3, err
		}
		records = append(records, dayRecords...)
	}
	return records, models.DataSourceS3, nil
}

func (s blobAnalyticsSource) Dates(ctx context.Context) ([]string, models.DataSource, error) {
	dates, err := s.reader.ListDates(ctx)
	return dates, models.DataSourceS3, err
}

func (s blobAnalyticsSource) Find(ctx context.Context, id string) (models.PredictionRecord, models.DataSource, error) {
	record, err := s.reader.FindRecord(ctx, id)
	return record, models.DataSourceS3, err
}

// localAnalyticsSource reduces the in-process store. It cannot fail, which
// is what makes it the fallback.
type localAnalyticsSource struct {
	store analyticsLocalReader
	clock clock.Clock
}

func newLocalAnalyticsSource(store analyticsLocalReader, clock clock.Clock) localAnalyticsSource {
	return localAnalyticsSource{store: store, clock: clock}
}

// windowCutoff is midnight UTC of the oldest day in an N-day window ending
// today, matching the blob source's date arithmetic.
func windowCutoff(now time.Time, days int) time.Time {
	first := now.UTC().AddDate(0, 0, -(days - 1))
	return time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
}

func (s localAnalyticsSource) Records(ctx context.Context, days int) ([]models.PredictionRecord, models.DataSource, error) {
	cutoff := windowCutoff(s.clock.Now(), days)
	return s.store.PredictionsSince(cutoff), models.DataSourceLocal, nil
}

func (s localAnalyticsSource) Dates(ctx context.Context) ([]string, models.DataSource, error) {
	var dates []string
	for _, record := range s.store.AllPredictions() {
		if date := record.Date(); !slices.Contains(dates, date) {
			dates = append(dates, date)
		}
	}
	slices.Sort(dates)
	return dates, models.DataSourceLocal, nil
}

func (s localAnalyticsSource) Find(ctx context.Context, id string) (models.PredictionRecord, models.DataSource, error) {
	for _, record := range s.store.AllPredictions() {
		if record.Id == id {
			return record, models.DataSourceLocal, nil
		}
	}
	return models.PredictionRecord{}, models.DataSourceLocal,
		errors.Wrapf(models.ErrPredictionNotFound, "prediction %s not found in local history", id)
}

// fallbackAnalyticsSource tries the primary source and degrades to the
// fallback on any error, tagging the answer with whichever store served it.
type fallbackAnalyticsSource struct {
	primary  AnalyticsSource
	fallback AnalyticsSource
}

func newFallbackAnalyticsSource(primary, fallback AnalyticsSource) fallbackAnalyticsSource {
	return fallbackAnalyticsSource{primary: primary, fallback: fallback}
}

func (s fallbackAnalyticsSource) Records(ctx context.Context, days int) ([]models.PredictionRecord, models.DataSource, error) {
	records, source, err := s.primary.Records(ctx, days)
	if err == nil {
		return records, source, nil
	}
	s.reportFallback(ctx, err)
	return s.fallback.Records(ctx, days)
}

func (s fallbackAnalyticsSource) Dates(ctx context.Context) ([]string, models.DataSource, error) {
	dates, source, err := s.primary.Dates(ctx)
	if err == nil {
		return dates, source, nil
	}
	s.reportFallback(ctx, err)
	return s.fallback.Dates(ctx)
}

// Find also consults the fallback on a clean miss: a record written while the
// primary store was unreachable exists only in the fallback. A miss is not an
// outage, so it is not reported as one.
func (s fallbackAnalyticsSource) Find(ctx context.Context, id string) (models.PredictionRecord, models.DataSource, error) {
	record, source, err := s.primary.Find(ctx, id)
	if err == nil {
		return record, source, nil
	}
	if !errors.Is(err, models.NotFoundError) {
		s.reportFallback(ctx, err)
	}
	return s.fallback.Find(ctx, id)
}

func (s fallbackAnalyticsSource) reportFallback(ctx context.Context, err error) {
	utils.MetricAnalyticsFallback.Inc()
	utils.LoggerFromContext(ctx).WarnContext(ctx,
		"analytics primary source failed, serving from fallback", "error", err.Error())
}

type AnalyticsUsecase struct {
	source AnalyticsSource
	clock  clock.Clock
}

// Dashboard returns the landing view: the window's records newest first,
// their summary and parameter averages.
func (uc AnalyticsUsecase) Dashboard(ctx context.Context, days int) (models.DashboardReport, models.DataSource, error) {
	if days <= 0 {
		days = defaultDashboardDays
	}
	records, source, err := uc.source.Records(ctx, days)
	if err != nil {
		return models.DashboardReport{}, source, err
	}

	slices.SortFunc(records, func(a, b models.PredictionRecord) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	return models.DashboardReport{
		Predictions:       records,
		Summary:           models.Summarize(records),
		AverageParameters: models.AverageSensorParameters(records),
	}, source, nil
}

// Report builds the full aggregation for the period.
func (uc AnalyticsUsecase) Report(ctx context.Context, period models.AnalyticsPeriod) (models.AnalyticsReport, models.DataSource, error) {
	days := period.Days()
	records, source, err := uc.source.Records(ctx, days)
	if err != nil {
		return models.AnalyticsReport{}, source, err
	}
	return models.BuildAnalyticsReport(records, days, uc.clock.Now()), source, nil
}

func (uc AnalyticsUsecase) Trends(ctx context.Context, period models.AnalyticsPeriod) ([]models.QualityTrendPoint, models.DataSource, error) {
	records, source, err := uc.source.Records(ctx, period.Days())
	if err != nil {
		return nil, source, err
	}
	return models.QualityTrends(records), source, nil
}

func (uc AnalyticsUsecase) ParameterTrends(ctx context.Context, period models.AnalyticsPeriod) ([]models.ParameterTrendPoint, models.DataSource, error) {
	records, source, err := uc.source.Records(ctx, period.Days())
	if err != nil {
		return nil, source, err
	}
	return models.ParameterTrends(records), source, nil
}

func (uc AnalyticsUsecase) Distributions(ctx context.Context, period models.AnalyticsPeriod) (models.DistributionReport, models.DataSource, error) {
	records, source, err := uc.source.Records(ctx, period.Days())
	if err != nil {
		return models.DistributionReport{}, source, err
	}
	quality, risk, method := models.Distributions(records)
	return models.DistributionReport{Quality: quality, Risk: risk, Method: method}, source, nil
}

// DailyStats returns the fixed-length last-N-days series, empty days
// included.
func (uc AnalyticsUsecase) DailyStats(ctx context.Context, days int) ([]models.DailyStat, models.DataSource, error) {
	if days <= 0 {
		days = defaultDashboardDays
	}
	records, source, err := uc.source.Records(ctx, days)
	if err != nil {
		return nil, source, err
	}
	return models.DailyStats(records, days, uc.clock.Now()), source, nil
}

func (uc AnalyticsUsecase) Summary(ctx context.Context, period models.AnalyticsPeriod) (
	models.PredictionSummary, models.ParameterAverages, models.DataSource, error,
) {
	records, source, err := uc.source.Records(ctx, period.Days())
	if err != nil {
		return models.PredictionSummary{}, models.ParameterAverages{}, source, err
	}
	return models.Summarize(records), models.AverageSensorParameters(records), source, nil
}

// Dates lists the days having any prediction data, ascending.
func (uc AnalyticsUsecase) Dates(ctx context.Context) ([]string, models.DataSource, error) {
	return uc.source.Dates(ctx)
}

// Prediction looks a single record up by id.
func (uc AnalyticsUsecase) Prediction(ctx context.Context, id string) (models.PredictionRecord, models.DataSource, error) {
	return uc.source.Find(ctx, id)
}
