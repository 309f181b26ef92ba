package usecases

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/hydroscope/hydroscope-backend/mocks"
	"github.com/hydroscope/hydroscope-backend/models"
)

type AwsDiagnosticsUsecaseTestSuite struct {
	suite.Suite
	objectStorage *mocks.ObjectStorage
	dynamoDb      *mocks.DynamoDbDiagnostics
}

func (suite *AwsDiagnosticsUsecaseTestSuite) SetupTest() {
	suite.objectStorage = new(mocks.ObjectStorage)
	suite.dynamoDb = new(mocks.DynamoDbDiagnostics)
}

func (suite *AwsDiagnosticsUsecaseTestSuite) makeUsecase() AwsDiagnosticsUsecase {
	return AwsDiagnosticsUsecase{
		objectStorage: suite.objectStorage,
		dynamoDb:      suite.dynamoDb,
	}
}

func (suite *AwsDiagnosticsUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.objectStorage.AssertExpectations(t)
	suite.dynamoDb.AssertExpectations(t)
}

func (suite *AwsDiagnosticsUsecaseTestSuite) Test_ListObjects_nominal() {
	listing := models.S3ObjectListing{
		Bucket: "hydroscope-data",
		Prefix: "predictions/",
		Objects: []models.S3Object{
			{Key: "predictions/json/2025-06-10/rec-1.json", Size: 512,
				LastModified: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)},
		},
	}
	suite.objectStorage.On("ListObjects", "predictions/").Return(listing, nil)

	result, err := suite.makeUsecase().ListObjects(context.Background(), "predictions/")

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, listing, result)
	suite.AssertExpectations()
}

func (suite *AwsDiagnosticsUsecaseTestSuite) Test_DownloadObject_nominal() {
	suite.objectStorage.On("GetObject", "predictions/csv/2025-06-10/predictions.csv").
		Return(models.Blob{
			FileName:   "predictions.csv",
			ReadCloser: io.NopCloser(strings.NewReader("id,timestamp\n")),
		}, nil)

	blob, err := suite.makeUsecase().DownloadObject(
		context.Background(), "predictions/csv/2025-06-10/predictions.csv")

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, "predictions.csv", blob.FileName)
	content, err := io.ReadAll(blob.ReadCloser)
	require.NoError(t, err)
	assert.Equal(t, "id,timestamp\n", string(content))
	suite.AssertExpectations()
}

func (suite *AwsDiagnosticsUsecaseTestSuite) Test_ListTables_nominal() {
	suite.dynamoDb.On("ListTables").Return([]string{"readings", "stations"}, nil)

	tables, err := suite.makeUsecase().ListTables(context.Background())

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, []string{"readings", "stations"}, tables)
	suite.AssertExpectations()
}

func (suite *AwsDiagnosticsUsecaseTestSuite) Test_DescribeTable_nominal() {
	description := models.DynamoTableDescription{
		Name:      "readings",
		Status:    "ACTIVE",
		ItemCount: 1200,
		SizeBytes: 65536,
	}
	suite.dynamoDb.On("DescribeTable", "readings").Return(description, nil)

	result, err := suite.makeUsecase().DescribeTable(context.Background(), "readings")

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, description, result)
	suite.AssertExpectations()
}

func (suite *AwsDiagnosticsUsecaseTestSuite) Test_ScanTable_nominal() {
	scan := models.DynamoScanResult{
		Table: "readings",
		Count: 1,
		Items: []map[string]any{{"id": "r-1", "ph": 7.1}},
	}
	suite.dynamoDb.On("ScanTable", "readings", 25).Return(scan, nil)

	result, err := suite.makeUsecase().ScanTable(context.Background(), "readings", 25)

	t := suite.T()
	assert.NoError(t, err)
	assert.Equal(t, scan, result)
	suite.AssertExpectations()
}

func (suite *AwsDiagnosticsUsecaseTestSuite) Test_dynamodb_not_configured() {
	uc := AwsDiagnosticsUsecase{objectStorage: suite.objectStorage}
	ctx := context.Background()
	t := suite.T()

	_, err := uc.ListTables(ctx)
	assert.ErrorIs(t, err, models.UnprocessableEntityError)

	_, err = uc.DescribeTable(ctx, "readings")
	assert.ErrorIs(t, err, models.UnprocessableEntityError)

	_, err = uc.ScanTable(ctx, "readings", 25)
	assert.ErrorIs(t, err, models.UnprocessableEntityError)
}

func TestAwsDiagnosticsUsecase(t *testing.T) {
	suite.Run(t, new(AwsDiagnosticsUsecaseTestSuite))
}
