package repositories

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"

	"github.com/hydroscope/hydroscope-backend/models"
)

const dynamoScanDefaultLimit = 50

// AwsDynamoDBRepository backs the DynamoDB diagnostics routes. The tables it
// reads (predictions, sensor_readings) are provisioned out of band.
type AwsDynamoDBRepository struct {
	client *dynamodb.Client
}

func NewAwsDynamoDBRepository(client *dynamodb.Client) *AwsDynamoDBRepository {
	return &AwsDynamoDBRepository{client: client}
}

func (repo *AwsDynamoDBRepository) ListTables(ctx context.Context) ([]string, error) {
	out, err := repo.client.ListTables(ctx, &dynamodb.ListTablesInput{})
	if err != nil {
		return nil, errors.Wrap(err, "could not list DynamoDB tables")
	}
	return out.TableNames, nil
}

func (repo *AwsDynamoDBRepository) DescribeTable(ctx context.Context, tableName string) (models.DynamoTableDescription, error) {
	out, err := repo.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		var notFound *ddbtypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return models.DynamoTableDescription{}, errors.Wrapf(models.NotFoundError,
				"DynamoDB table %s does not exist", tableName)
		}
		return models.DynamoTableDescription{}, errors.Wrapf(err, "could not describe DynamoDB table %s", tableName)
	}

	return models.DynamoTableDescription{
		Name:      aws.ToString(out.Table.TableName),
		Status:    string(out.Table.TableStatus),
		ItemCount: aws.ToInt64(out.Table.ItemCount),
		SizeBytes: aws.ToInt64(out.Table.TableSizeBytes),
	}, nil
}

func (repo *AwsDynamoDBRepository) ScanTable(ctx context.Context, tableName string, limit int) (models.DynamoScanResult, error) {
	if limit <= 0 {
		limit = dynamoScanDefaultLimit
	}

	out, err := repo.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(tableName),
		Limit:     aws.Int32(int32(limit)),
	})
	if err != nil {
		var notFound *ddbtypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return models.DynamoScanResult{}, errors.Wrapf(models.NotFoundError,
				"DynamoDB table %s does not exist", tableName)
		}
		return models.DynamoScanResult{}, errors.Wrapf(err, "could not scan DynamoDB table %s", tableName)
	}

	items := make([]map[string]any, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return models.DynamoScanResult{}, errors.Wrapf(err, "could not decode items from DynamoDB table %s", tableName)
	}

	return models.DynamoScanResult{
		Table: tableName,
		Count: len(items),
		Items: items,
	}, nil
}
