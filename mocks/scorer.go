package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hydroscope/hydroscope-backend/models"
)

type Scorer struct {
	mock.Mock
}

func (s *Scorer) Score(ctx context.Context, method models.PredictionMethod,
	imagePath, csvPath string,
) (models.ScorerOutput, error) {
	args := s.Called(method, imagePath, csvPath)
	return args.Get(0).(models.ScorerOutput), args.Error(1)
}

func (s *Scorer) Check(ctx context.Context) error {
	args := s.Called()
	return args.Error(0)
}
