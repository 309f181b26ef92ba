package usecases

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/repositories"
)

type dynamoDbDiagnostics interface {
	ListTables(ctx context.Context) ([]string, error)
	DescribeTable(ctx context.Context, tableName string) (models.DynamoTableDescription, error)
	ScanTable(ctx context.Context, tableName string, limit int) (models.DynamoScanResult, error)
}

// AwsDiagnosticsUsecase exposes raw S3 and DynamoDB lookups for operational
// troubleshooting. Nothing in the prediction path depends on it.
type AwsDiagnosticsUsecase struct {
	objectStorage repositories.ObjectStorageRepository
	dynamoDb      dynamoDbDiagnostics
}

func (uc AwsDiagnosticsUsecase) ListObjects(ctx context.Context, prefix string) (models.S3ObjectListing, error) {
	return uc.objectStorage.ListObjects(ctx, prefix)
}

func (uc AwsDiagnosticsUsecase) DownloadObject(ctx context.Context, key string) (models.Blob, error) {
	return uc.objectStorage.GetObject(ctx, key)
}

func (uc AwsDiagnosticsUsecase) checkDynamoDbConfigured() error {
	if uc.dynamoDb == nil {
		return errors.Wrap(models.UnprocessableEntityError,
			"DynamoDB diagnostics are not configured on this deployment")
	}
	return nil
}

func (uc AwsDiagnosticsUsecase) ListTables(ctx context.Context) ([]string, error) {
	if err := uc.checkDynamoDbConfigured(); err != nil {
		return nil, err
	}
	return uc.dynamoDb.ListTables(ctx)
}

func (uc AwsDiagnosticsUsecase) DescribeTable(ctx context.Context, tableName string) (models.DynamoTableDescription, error) {
	if err := uc.checkDynamoDbConfigured(); err != nil {
		return models.DynamoTableDescription{}, err
	}
	return uc.dynamoDb.DescribeTable(ctx, tableName)
}

func (uc AwsDiagnosticsUsecase) ScanTable(ctx context.Context, tableName string, limit int) (models.DynamoScanResult, error) {
	if err := uc.checkDynamoDbConfigured(); err != nil {
		return models.DynamoScanResult{}, err
	}
	return uc.dynamoDb.ScanTable(ctx, tableName, limit)
}
