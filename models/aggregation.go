package models

import (
	"math"
	"slices"
	"time"
)

// Pure aggregation over prediction records. Both analytics sources (blob
// backed and local) reduce their records through these functions so the two
// paths cannot drift apart.

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summarize computes the window summary. Empty input yields zero counts and
// a zero average, never NaN.
func Summarize(records []PredictionRecord) PredictionSummary {
	summary := PredictionSummary{Total: len(records)}

	var confidenceSum float64
	for _, r := range records {
		switch r.WaterQuality {
		case WaterQualitySafe:
			summary.Safe++
		case WaterQualityUnsafe:
			summary.Unsafe++
		}
		switch r.RiskLevel {
		case RiskLevelLow:
			summary.RiskLevels.Low++
		case RiskLevelMedium:
			summary.RiskLevels.Medium++
		case RiskLevelHigh:
			summary.RiskLevels.High++
		}
		confidenceSum += r.Confidence.Quality
	}
	if summary.Total > 0 {
		summary.AverageConfidence = int(math.Round(confidenceSum / float64(summary.Total)))
	}
	return summary
}

// AverageSensorParameters averages each parameter over the records carrying
// sensor data, rounded to two decimals. All-zero when none do.
func AverageSensorParameters(records []PredictionRecord) ParameterAverages {
	var sum ParameterAverages
	var n int
	for _, r := range records {
		if r.SensorData == nil {
			continue
		}
		sum.PH += r.SensorData.PH
		sum.Temperature += r.SensorData.Temperature
		sum.TDS += r.SensorData.TDS
		sum.DO += r.SensorData.DO
		sum.Turbidity += r.SensorData.Turbidity
		n++
	}
	if n == 0 {
		return ParameterAverages{}
	}
	d := float64(n)
	return ParameterAverages{
		PH:          round2(sum.PH / d),
		Temperature: round2(sum.Temperature / d),
		TDS:         round2(sum.TDS / d),
		DO:          round2(sum.DO / d),
		Turbidity:   round2(sum.Turbidity / d),
	}
}

func groupByDate(records []PredictionRecord) map[string][]PredictionRecord {
	groups := make(map[string][]PredictionRecord)
	for _, r := range records {
		date := r.Date()
		groups[date] = append(groups[date], r)
	}
	return groups
}

func sortedDates(groups map[string][]PredictionRecord) []string {
	dates := make([]string, 0, len(groups))
	for date := range groups {
		dates = append(dates, date)
	}
	// ISO dates sort chronologically as strings.
	slices.Sort(dates)
	return dates
}

// ParameterTrends emits one row per calendar date having records, averages
// per parameter, ascending by date.
func ParameterTrends(records []PredictionRecord) []ParameterTrendPoint {
	groups := groupByDate(records)

	trends := make([]ParameterTrendPoint, 0, len(groups))
	for _, date := range sortedDates(groups) {
		trends = append(trends, ParameterTrendPoint{
			Date:     date,
			Averages: AverageSensorParameters(groups[date]),
		})
	}
	return trends
}

// QualityTrends emits one row per calendar date having records, with the
// safe/unsafe split and a safety rate, ascending by date.
func QualityTrends(records []PredictionRecord) []QualityTrendPoint {
	groups := groupByDate(records)

	trends := make([]QualityTrendPoint, 0, len(groups))
	for _, date := range sortedDates(groups) {
		var point QualityTrendPoint
		point.Date = date
		for _, r := range groups[date] {
			if r.WaterQuality == WaterQualitySafe {
				point.Safe++
			} else {
				point.Unsafe++
			}
		}
		point.Total = len(groups[date])
		point.SafetyRate = int(math.Round(100 * float64(point.Safe) / float64(point.Total)))
		trends = append(trends, point)
	}
	return trends
}

// Distributions computes flat counts by water quality, risk level and
// method. Records without a method land in a literal "unknown" bucket.
func Distributions(records []PredictionRecord) (quality, risk, method map[string]int) {
	quality = make(map[string]int)
	risk = make(map[string]int)
	method = make(map[string]int)

	for _, r := range records {
		quality[string(r.WaterQuality)]++
		risk[string(r.RiskLevel)]++
		m := string(r.Method)
		if m == "" {
			m = "unknown"
		}
		method[m]++
	}
	return quality, risk, method
}

// DailyStats emits exactly one row per day for the last `days` days
// inclusive of today, most recent first, with zero counts for empty days.
func DailyStats(records []PredictionRecord, days int, now time.Time) []DailyStat {
	groups := groupByDate(records)

	stats := make([]DailyStat, 0, days)
	for i := 0; i < days; i++ {
		date := now.UTC().AddDate(0, 0, -i).Format(time.DateOnly)
		stat := DailyStat{Date: date}

		var confidenceSum float64
		for _, r := range groups[date] {
			stat.Count++
			if r.WaterQuality == WaterQualitySafe {
				stat.Safe++
			} else {
				stat.Unsafe++
			}
			confidenceSum += r.Confidence.Quality
		}
		if stat.Count > 0 {
			stat.AverageConfidence = round2(confidenceSum / float64(stat.Count))
		}
		stats = append(stats, stat)
	}
	return stats
}

// BuildAnalyticsReport assembles the full analytics payload from one record
// window.
func BuildAnalyticsReport(records []PredictionRecord, days int, now time.Time) AnalyticsReport {
	quality, risk, method := Distributions(records)
	return AnalyticsReport{
		Summary:             Summarize(records),
		Trends:              QualityTrends(records),
		ParameterTrends:     ParameterTrends(records),
		QualityDistribution: quality,
		RiskDistribution:    risk,
		MethodDistribution:  method,
		DailyStats:          DailyStats(records, days, now),
	}
}
