package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func record(day time.Time, quality WaterQuality, risk RiskLevel, confidence float64) PredictionRecord {
	return PredictionRecord{
		Id:           "id-" + day.Format("20060102") + "-" + string(quality),
		Timestamp:    day,
		WaterQuality: quality,
		RiskLevel:    risk,
		Confidence:   Confidence{Quality: confidence, Risk: confidence},
		Method:       MethodHybrid,
	}
}

func TestSummarize(t *testing.T) {
	day := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("empty window", func(t *testing.T) {
		summary := Summarize(nil)
		assert.Equal(t, 0, summary.Total)
		assert.Equal(t, 0, summary.AverageConfidence)
	})

	t.Run("counts and average confidence", func(t *testing.T) {
		records := []PredictionRecord{
			record(day, WaterQualitySafe, RiskLevelLow, 90),
			record(day, WaterQualitySafe, RiskLevelMedium, 80),
			record(day, WaterQualityUnsafe, RiskLevelHigh, 71),
		}

		summary := Summarize(records)
		assert.Equal(t, 3, summary.Total)
		assert.Equal(t, 2, summary.Safe)
		assert.Equal(t, 1, summary.Unsafe)
		assert.Equal(t, RiskLevelCounts{Low: 1, Medium: 1, High: 1}, summary.RiskLevels)
		// (90+80+71)/3 = 80.33 rounds to 80
		assert.Equal(t, 80, summary.AverageConfidence)
	})
}

func TestAverageSensorParameters(t *testing.T) {
	day := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("records without sensor data are skipped", func(t *testing.T) {
		withData := record(day, WaterQualitySafe, RiskLevelLow, 90)
		withData.SensorData = &SensorData{PH: 7.0, Temperature: 25.0, TDS: 150, DO: 6.5, Turbidity: 2.0}
		withoutData := record(day, WaterQualityUnsafe, RiskLevelHigh, 50)

		averages := AverageSensorParameters([]PredictionRecord{withData, withoutData})
		assert.Equal(t, 7.0, averages.PH)
		assert.Equal(t, 25.0, averages.Temperature)
	})

	t.Run("averages round to two decimals", func(t *testing.T) {
		first := record(day, WaterQualitySafe, RiskLevelLow, 90)
		first.SensorData = &SensorData{PH: 7.0}
		second := record(day, WaterQualitySafe, RiskLevelLow, 90)
		second.SensorData = &SensorData{PH: 7.1}
		third := record(day, WaterQualitySafe, RiskLevelLow, 90)
		third.SensorData = &SensorData{PH: 7.1}

		averages := AverageSensorParameters([]PredictionRecord{first, second, third})
		assert.Equal(t, 7.07, averages.PH)
	})

	t.Run("no sensor data at all", func(t *testing.T) {
		averages := AverageSensorParameters([]PredictionRecord{record(day, WaterQualitySafe, RiskLevelLow, 90)})
		assert.Equal(t, ParameterAverages{}, averages)
	})
}

func TestQualityTrends(t *testing.T) {
	day1 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	records := []PredictionRecord{
		record(day2, WaterQualitySafe, RiskLevelLow, 90),
		record(day1, WaterQualitySafe, RiskLevelLow, 85),
		record(day1, WaterQualitySafe, RiskLevelLow, 80),
		record(day1, WaterQualityUnsafe, RiskLevelHigh, 60),
	}

	trends := QualityTrends(records)
	assert.Len(t, trends, 2)
	assert.Equal(t, "2025-06-01", trends[0].Date)
	assert.Equal(t, 2, trends[0].Safe)
	assert.Equal(t, 1, trends[0].Unsafe)
	assert.Equal(t, 3, trends[0].Total)
	// round(100 * 2/3) = 67
	assert.Equal(t, 67, trends[0].SafetyRate)
	assert.Equal(t, "2025-06-02", trends[1].Date)
	assert.Equal(t, 100, trends[1].SafetyRate)
}

func TestParameterTrends(t *testing.T) {
	day1 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	first := record(day1, WaterQualitySafe, RiskLevelLow, 90)
	first.SensorData = &SensorData{PH: 7.0}
	second := record(day2, WaterQualitySafe, RiskLevelLow, 90)
	second.SensorData = &SensorData{PH: 6.0}

	trends := ParameterTrends([]PredictionRecord{second, first})
	assert.Len(t, trends, 2)
	assert.Equal(t, "2025-06-01", trends[0].Date)
	assert.Equal(t, 7.0, trends[0].Averages.PH)
	assert.Equal(t, "2025-06-02", trends[1].Date)
	assert.Equal(t, 6.0, trends[1].Averages.PH)
}

func TestDistributions(t *testing.T) {
	day := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	noMethod := record(day, WaterQualitySafe, RiskLevelLow, 90)
	noMethod.Method = ""

	quality, risk, method := Distributions([]PredictionRecord{
		record(day, WaterQualitySafe, RiskLevelLow, 90),
		record(day, WaterQualityUnsafe, RiskLevelHigh, 60),
		noMethod,
	})

	assert.Equal(t, map[string]int{"Safe": 2, "Unsafe": 1}, quality)
	assert.Equal(t, map[string]int{"Low": 2, "High": 1}, risk)
	assert.Equal(t, map[string]int{"hybrid": 2, "unknown": 1}, method)
}

func TestDailyStats(t *testing.T) {
	now := time.Date(2025, 6, 3, 15, 0, 0, 0, time.UTC)

	records := []PredictionRecord{
		record(time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC), WaterQualitySafe, RiskLevelLow, 90),
		record(time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC), WaterQualityUnsafe, RiskLevelHigh, 61),
		record(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), WaterQualitySafe, RiskLevelLow, 80),
	}

	stats := DailyStats(records, 3, now)
	assert.Len(t, stats, 3)

	assert.Equal(t, "2025-06-03", stats[0].Date)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, 1, stats[0].Safe)
	assert.Equal(t, 1, stats[0].Unsafe)
	assert.Equal(t, 75.5, stats[0].AverageConfidence)

	// Empty days stay in the series with zero counts.
	assert.Equal(t, "2025-06-02", stats[1].Date)
	assert.Equal(t, 0, stats[1].Count)

	assert.Equal(t, "2025-06-01", stats[2].Date)
	assert.Equal(t, 1, stats[2].Count)
}

func TestBuildAnalyticsReport(t *testing.T) {
	now := time.Date(2025, 6, 3, 15, 0, 0, 0, time.UTC)
	records := []PredictionRecord{
		record(time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC), WaterQualitySafe, RiskLevelLow, 90),
	}

	report := BuildAnalyticsReport(records, 7, now)
	assert.Equal(t, 1, report.Summary.Total)
	assert.Len(t, report.Trends, 1)
	assert.Len(t, report.DailyStats, 7)
	assert.Equal(t, map[string]int{"Safe": 1}, report.QualityDistribution)
}

func TestAnalyticsPeriodDays(t *testing.T) {
	assert.Equal(t, 1, Period24h.Days())
	assert.Equal(t, 7, Period7d.Days())
	assert.Equal(t, 30, Period30d.Days())
	assert.Equal(t, 90, Period90d.Days())
	assert.Equal(t, 30, AnalyticsPeriod("everything").Days())
	assert.Equal(t, 30, AnalyticsPeriod("").Days())
}
