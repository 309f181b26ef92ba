package repositories

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/hydroscope/hydroscope-backend/repositories/clock"
	"github.com/hydroscope/hydroscope-backend/repositories/idp"
)

type Repositories struct {
	Clock                    clock.Clock
	BlobRepository           BlobRepository
	PredictionBlobRepository *PredictionBlobRepository
	ObjectStorage            ObjectStorageRepository
	DynamoDbRepository       *AwsDynamoDBRepository
	CognitoClient            *idp.CognitoClient
	ScorerRepository         *ScorerRepository
	LocalStore               *LocalStore
}

type options struct {
	clock            clock.Clock
	predictionBucket string
	objectStorage    ObjectStorageRepository
	dynamoDbClient   *dynamodb.Client
	cognitoClient    *idp.CognitoClient
	scorerConfig     ScorerConfig
}

type Option func(*options)

func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithPredictionBucketUrl enables the derived prediction formats in the
// bucket behind the given gocloud url (s3://, file://, mem://).
func WithPredictionBucketUrl(bucketUrl string) Option {
	return func(o *options) {
		o.predictionBucket = bucketUrl
	}
}

func WithObjectStorage(repo ObjectStorageRepository) Option {
	return func(o *options) {
		o.objectStorage = repo
	}
}

func WithDynamoDbClient(client *dynamodb.Client) Option {
	return func(o *options) {
		o.dynamoDbClient = client
	}
}

func WithCognitoClient(client *idp.CognitoClient) Option {
	return func(o *options) {
		o.cognitoClient = client
	}
}

func WithScorer(config ScorerConfig) Option {
	return func(o *options) {
		o.scorerConfig = config
	}
}

func NewRepositories(opts ...Option) Repositories {
	options := options{
		clock:         clock.New(),
		objectStorage: NewAwsS3RepositoryFake(""),
	}
	for _, opt := range opts {
		opt(&options)
	}

	blobRepository := NewBlobRepository()

	repositories := Repositories{
		Clock:            options.clock,
		BlobRepository:   blobRepository,
		ObjectStorage:    options.objectStorage,
		CognitoClient:    options.cognitoClient,
		ScorerRepository: NewScorerRepository(options.scorerConfig),
		LocalStore:       NewLocalStore(),
	}

	if options.predictionBucket != "" {
		repositories.PredictionBlobRepository = NewPredictionBlobRepository(blobRepository, options.predictionBucket)
	}
	if options.dynamoDbClient != nil {
		repositories.DynamoDbRepository = NewAwsDynamoDBRepository(options.dynamoDbClient)
	}

	return repositories
}
