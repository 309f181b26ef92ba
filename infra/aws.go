package infra

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	cognitoidp "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
)

type AwsConfig struct {
	Region          string
	AccessKeyId     string
	SecretAccessKey string
	SessionToken    string
}

// LoadAwsConfig resolves the SDK configuration from the usual environment
// chain (AWS_REGION, AWS_ACCESS_KEY_ID, instance roles...), with explicitly
// configured static keys taking precedence.
func LoadAwsConfig(ctx context.Context, cfg AwsConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyId != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyId, cfg.SecretAccessKey, cfg.SessionToken)))
	}

	conf, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "failed to load AWS config")
	}
	return conf, nil
}

func NewS3Client(conf aws.Config) *s3.Client {
	return s3.NewFromConfig(conf)
}

func NewDynamoDbClient(conf aws.Config) *dynamodb.Client {
	return dynamodb.NewFromConfig(conf)
}

func NewCognitoIdpClient(conf aws.Config) *cognitoidp.Client {
	return cognitoidp.NewFromConfig(conf)
}
