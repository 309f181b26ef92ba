package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hydroscope/hydroscope-backend/models"
)

type PredictionDerivedWriter struct {
	mock.Mock
}

func (w *PredictionDerivedWriter) StoreRecordJson(ctx context.Context, record models.PredictionRecord) error {
	args := w.Called(record)
	return args.Error(0)
}

func (w *PredictionDerivedWriter) AppendDailyCsv(ctx context.Context, record models.PredictionRecord) error {
	args := w.Called(record)
	return args.Error(0)
}

func (w *PredictionDerivedWriter) UpdateDailyAggregate(ctx context.Context, record models.PredictionRecord) error {
	args := w.Called(record)
	return args.Error(0)
}
