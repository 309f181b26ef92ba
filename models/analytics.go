package models

// DataSource tags every analytics response with the backing store that
// answered it. The dashboard uses it to flag degraded-data situations, so it
// is part of the API contract rather than an internal detail.
type DataSource string

const (
	DataSourceS3    DataSource = "s3"
	DataSourceLocal DataSource = "local"
)

// AnalyticsPeriod is the lookback window selector accepted by the analytics
// endpoints.
type AnalyticsPeriod string

const (
	Period24h AnalyticsPeriod = "24h"
	Period7d  AnalyticsPeriod = "7d"
	Period30d AnalyticsPeriod = "30d"
	Period90d AnalyticsPeriod = "90d"
)

// Days maps the period to its window length. Unrecognized values default to
// 30 days rather than being rejected.
func (p AnalyticsPeriod) Days() int {
	switch p {
	case Period24h:
		return 1
	case Period7d:
		return 7
	case Period30d:
		return 30
	case Period90d:
		return 90
	default:
		return 30
	}
}

type RiskLevelCounts struct {
	Low    int
	Medium int
	High   int
}

// PredictionSummary aggregates a window of records: total, counts by water
// quality and risk level, and the mean quality confidence rounded to the
// nearest integer.
type PredictionSummary struct {
	Total             int
	Safe              int
	Unsafe            int
	RiskLevels        RiskLevelCounts
	AverageConfidence int
}

// ParameterAverages is the arithmetic mean of each sensor parameter over the
// records that carried sensor data, each rounded to two decimals.
type ParameterAverages struct {
	PH          float64
	Temperature float64
	TDS         float64
	DO          float64
	Turbidity   float64
}

// ParameterTrendPoint is one calendar day's parameter averages.
type ParameterTrendPoint struct {
	Date     string
	Averages ParameterAverages
}

// QualityTrendPoint is one calendar day's safe/unsafe split.
// SafetyRate is round(100 * safe / total).
type QualityTrendPoint struct {
	Date       string
	Safe       int
	Unsafe     int
	Total      int
	SafetyRate int
}

// DailyStat is one row of the fixed-length last-N-days series: unlike trend
// points, empty days are emitted with zero counts.
type DailyStat struct {
	Date              string
	Count             int
	Safe              int
	Unsafe            int
	AverageConfidence float64
}

// DistributionReport groups the three flat distributions.
type DistributionReport struct {
	Quality map[string]int
	Risk    map[string]int
	Method  map[string]int
}

// AnalyticsReport is the full aggregation served by the analytics endpoint.
type AnalyticsReport struct {
	Summary             PredictionSummary
	Trends              []QualityTrendPoint
	ParameterTrends     []ParameterTrendPoint
	QualityDistribution map[string]int
	RiskDistribution    map[string]int
	MethodDistribution  map[string]int
	DailyStats          []DailyStat
}

// DashboardReport backs the dashboard's landing view.
type DashboardReport struct {
	Predictions       []PredictionRecord
	Summary           PredictionSummary
	AverageParameters ParameterAverages
}

// DailyAggregate is the blob-persisted daily rollup: the day's records plus
// a running summary, rewritten in full on each append.
type DailyAggregate struct {
	Date        string
	Predictions []PredictionRecord
	Summary     PredictionSummary
}
