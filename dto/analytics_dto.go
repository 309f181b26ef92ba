package dto

import (
	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/pure_utils"
)

type PredictionSummaryDto struct {
	Total             int                `json:"total"`
	Safe              int                `json:"safe"`
	Unsafe            int                `json:"unsafe"`
	RiskLevels        RiskLevelCountsDto `json:"riskLevels"`
	AverageConfidence int                `json:"averageConfidence"`
}

type RiskLevelCountsDto struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

func AdaptPredictionSummaryDto(summary models.PredictionSummary) PredictionSummaryDto {
	return PredictionSummaryDto{
		Total:  summary.Total,
		Safe:   summary.Safe,
		Unsafe: summary.Unsafe,
		RiskLevels: RiskLevelCountsDto{
			Low:    summary.RiskLevels.Low,
			Medium: summary.RiskLevels.Medium,
			High:   summary.RiskLevels.High,
		},
		AverageConfidence: summary.AverageConfidence,
	}
}

// ParameterAveragesDto keeps the scoring script's key spelling, like
// SensorDataDto.
type ParameterAveragesDto struct {
	PH          float64 `json:"pH"`          //nolint:tagliatelle
	Temperature float64 `json:"Temperature"` //nolint:tagliatelle
	TDS         float64 `json:"TDS"`         //nolint:tagliatelle
	DO          float64 `json:"DO"`          //nolint:tagliatelle
	Turbidity   float64 `json:"Turbidity"`   //nolint:tagliatelle
}

func AdaptParameterAveragesDto(averages models.ParameterAverages) ParameterAveragesDto {
	return ParameterAveragesDto{
		PH:          averages.PH,
		Temperature: averages.Temperature,
		TDS:         averages.TDS,
		DO:          averages.DO,
		Turbidity:   averages.Turbidity,
	}
}

type QualityTrendPointDto struct {
	Date       string `json:"date"`
	Safe       int    `json:"safe"`
	Unsafe     int    `json:"unsafe"`
	Total      int    `json:"total"`
	SafetyRate int    `json:"safetyRate"`
}

func AdaptQualityTrendPointDto(point models.QualityTrendPoint) QualityTrendPointDto {
	return QualityTrendPointDto{
		Date:       point.Date,
		Safe:       point.Safe,
		Unsafe:     point.Unsafe,
		Total:      point.Total,
		SafetyRate: point.SafetyRate,
	}
}

func AdaptQualityTrendPointDtos(points []models.QualityTrendPoint) []QualityTrendPointDto {
	return pure_utils.Map(points, AdaptQualityTrendPointDto)
}

type ParameterTrendPointDto struct {
	Date     string               `json:"date"`
	Averages ParameterAveragesDto `json:"averages"`
}

func AdaptParameterTrendPointDtos(points []models.ParameterTrendPoint) []ParameterTrendPointDto {
	return pure_utils.Map(points, func(point models.ParameterTrendPoint) ParameterTrendPointDto {
		return ParameterTrendPointDto{
			Date:     point.Date,
			Averages: AdaptParameterAveragesDto(point.Averages),
		}
	})
}

type DailyStatDto struct {
	Date              string  `json:"date"`
	Count             int     `json:"count"`
	Safe              int     `json:"safe"`
	Unsafe            int     `json:"unsafe"`
	AverageConfidence float64 `json:"averageConfidence"`
}

func AdaptDailyStatDtos(stats []models.DailyStat) []DailyStatDto {
	return pure_utils.Map(stats, func(stat models.DailyStat) DailyStatDto {
		return DailyStatDto{
			Date:              stat.Date,
			Count:             stat.Count,
			Safe:              stat.Safe,
			Unsafe:            stat.Unsafe,
			AverageConfidence: stat.AverageConfidence,
		}
	})
}

type AnalyticsReportDto struct {
	Summary             PredictionSummaryDto     `json:"summary"`
	Trends              []QualityTrendPointDto   `json:"trends"`
	ParameterTrends     []ParameterTrendPointDto `json:"parameterTrends"`
	QualityDistribution map[string]int           `json:"qualityDistribution"`
	RiskDistribution    map[string]int           `json:"riskDistribution"`
	MethodDistribution  map[string]int           `json:"methodDistribution"`
	DailyStats          []DailyStatDto           `json:"dailyStats"`
}

func AdaptAnalyticsReportDto(report models.AnalyticsReport) AnalyticsReportDto {
	return AnalyticsReportDto{
		Summary:             AdaptPredictionSummaryDto(report.Summary),
		Trends:              AdaptQualityTrendPointDtos(report.Trends),
		ParameterTrends:     AdaptParameterTrendPointDtos(report.ParameterTrends),
		QualityDistribution: report.QualityDistribution,
		RiskDistribution:    report.RiskDistribution,
		MethodDistribution:  report.MethodDistribution,
		DailyStats:          AdaptDailyStatDtos(report.DailyStats),
	}
}
