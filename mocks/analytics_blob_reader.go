package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hydroscope/hydroscope-backend/models"
)

type AnalyticsBlobReader struct {
	mock.Mock
}

func (r *AnalyticsBlobReader) ReadDay(ctx context.Context, date string) ([]models.PredictionRecord, error) {
	args := r.Called(date)
	return args.Get(0).([]models.PredictionRecord), args.Error(1)
}

func (r *AnalyticsBlobReader) ListDates(ctx context.Context) ([]string, error) {
	args := r.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (r *AnalyticsBlobReader) FindRecord(ctx context.Context, id string) (models.PredictionRecord, error) {
	args := r.Called(id)
	return args.Get(0).(models.PredictionRecord), args.Error(1)
}
