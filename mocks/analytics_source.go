package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hydroscope/hydroscope-backend/models"
)

type AnalyticsSource struct {
	mock.Mock
}

func (s *AnalyticsSource) Records(ctx context.Context, days int) ([]models.PredictionRecord, models.DataSource, error) {
	args := s.Called(days)
	return args.Get(0).([]models.PredictionRecord), args.Get(1).(models.DataSource), args.Error(2)
}

func (s *AnalyticsSource) Dates(ctx context.Context) ([]string, models.DataSource, error) {
	args := s.Called()
	return args.Get(0).([]string), args.Get(1).(models.DataSource), args.Error(2)
}

func (s *AnalyticsSource) Find(ctx context.Context, id string) (models.PredictionRecord, models.DataSource, error) {
	args := s.Called(id)
	return args.Get(0).(models.PredictionRecord), args.Get(1).(models.DataSource), args.Error(2)
}
