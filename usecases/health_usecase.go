package usecases

import (
	"context"

	"github.com/hydroscope/hydroscope-backend/models"
)

type blobHealthRepository interface {
	CheckAccess(ctx context.Context, bucketUrl string) error
}

type scorerHealthRepository interface {
	Check(ctx context.Context) error
}

type HealthUsecase struct {
	blobRepository      blobHealthRepository
	predictionBucketUrl string
	scorerRepository    scorerHealthRepository
	hasIdpSetup         bool
}

func (u *HealthUsecase) GetHealthStatus(ctx context.Context) models.HealthStatus {
	statuses := []models.HealthItemStatus{}

	// Check blob store health
	if u.predictionBucketUrl != "" {
		err := u.blobRepository.CheckAccess(ctx, u.predictionBucketUrl)
		statuses = append(statuses, models.HealthItemStatus{
			Name:   models.BlobStoreHealthItemName,
			Status: err == nil,
		})
	}

	// Check scorer health
	err := u.scorerRepository.Check(ctx)
	statuses = append(statuses, models.HealthItemStatus{
		Name:   models.ScorerHealthItemName,
		Status: err == nil,
	})

	// The identity provider is not probed, only its configuration reported
	statuses = append(statuses, models.HealthItemStatus{
		Name:   models.IdpHealthItemName,
		Status: u.hasIdpSetup,
	})

	return models.HealthStatus{
		Statuses: statuses,
	}
}
