package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hydroscope/hydroscope-backend/models"
)

type DynamoDbDiagnostics struct {
	mock.Mock
}

func (d *DynamoDbDiagnostics) ListTables(ctx context.Context) ([]string, error) {
	args := d.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (d *DynamoDbDiagnostics) DescribeTable(ctx context.Context, tableName string) (models.DynamoTableDescription, error) {
	args := d.Called(tableName)
	return args.Get(0).(models.DynamoTableDescription), args.Error(1)
}

func (d *DynamoDbDiagnostics) ScanTable(ctx context.Context, tableName string, limit int) (models.DynamoScanResult, error) {
	args := d.Called(tableName, limit)
	return args.Get(0).(models.DynamoScanResult), args.Error(1)
}
