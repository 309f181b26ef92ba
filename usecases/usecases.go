package usecases

import (
	"github.com/hydroscope/hydroscope-backend/repositories"
)

type Usecases struct {
	Repositories        repositories.Repositories
	apiVersion          string
	maxBatchImages      int
	tempUploadDir       string
	predictionBucketUrl string
}

type Option func(*options)

func WithApiVersion(apiVersion string) Option {
	return func(o *options) {
		o.apiVersion = apiVersion
	}
}

func WithMaxBatchImages(size int) Option {
	return func(o *options) {
		o.maxBatchImages = size
	}
}

// WithTempUploadDir overrides where uploads are staged for the scorer.
// Empty means the system temp dir.
func WithTempUploadDir(dir string) Option {
	return func(o *options) {
		o.tempUploadDir = dir
	}
}

func WithPredictionBucketUrl(bucketUrl string) Option {
	return func(o *options) {
		o.predictionBucketUrl = bucketUrl
	}
}

type options struct {
	apiVersion          string
	maxBatchImages      int
	tempUploadDir       string
	predictionBucketUrl string
}

func newUsecasesWithOptions(repositories repositories.Repositories, o *options) Usecases {
	if o.maxBatchImages == 0 {
		o.maxBatchImages = DefaultMaxBatchImages
	}
	return Usecases{
		Repositories:        repositories,
		apiVersion:          o.apiVersion,
		maxBatchImages:      o.maxBatchImages,
		tempUploadDir:       o.tempUploadDir,
		predictionBucketUrl: o.predictionBucketUrl,
	}
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return newUsecasesWithOptions(repositories, o)
}

func (usecases *Usecases) NewPredictionUsecase() PredictionUsecase {
	uc := PredictionUsecase{
		clock:          usecases.Repositories.Clock,
		scorer:         usecases.Repositories.ScorerRepository,
		localStore:     usecases.Repositories.LocalStore,
		imageStore:     usecases.Repositories.ObjectStorage,
		tempDir:        usecases.tempUploadDir,
		maxBatchImages: usecases.maxBatchImages,
	}
	// A nil concrete pointer must not become a non-nil interface value.
	if usecases.Repositories.PredictionBlobRepository != nil {
		uc.derivedWriter = usecases.Repositories.PredictionBlobRepository
	}
	return uc
}

func (usecases *Usecases) NewAnalyticsUsecase() AnalyticsUsecase {
	c := usecases.Repositories.Clock
	local := newLocalAnalyticsSource(usecases.Repositories.LocalStore, c)

	var source AnalyticsSource = local
	if usecases.Repositories.PredictionBlobRepository != nil {
		source = newFallbackAnalyticsSource(
			newBlobAnalyticsSource(usecases.Repositories.PredictionBlobRepository, c),
			local,
		)
	}

	return AnalyticsUsecase{
		source: source,
		clock:  c,
	}
}

func (usecases *Usecases) NewSensorUsecase() SensorUsecase {
	return SensorUsecase{
		clock: usecases.Repositories.Clock,
		store: usecases.Repositories.LocalStore,
	}
}

func (usecases *Usecases) NewAuthUsecase() AuthUsecase {
	uc := AuthUsecase{}
	if usecases.Repositories.CognitoClient != nil {
		uc.idp = usecases.Repositories.CognitoClient
	}
	return uc
}

func (usecases *Usecases) NewAwsDiagnosticsUsecase() AwsDiagnosticsUsecase {
	uc := AwsDiagnosticsUsecase{
		objectStorage: usecases.Repositories.ObjectStorage,
	}
	if usecases.Repositories.DynamoDbRepository != nil {
		uc.dynamoDb = usecases.Repositories.DynamoDbRepository
	}
	return uc
}

func (usecases *Usecases) NewVersionUsecase() VersionUsecase {
	return VersionUsecase{
		ApiVersion: usecases.apiVersion,
	}
}

func (usecases *Usecases) NewHealthUsecase() HealthUsecase {
	return HealthUsecase{
		blobRepository:      usecases.Repositories.BlobRepository,
		predictionBucketUrl: usecases.predictionBucketUrl,
		scorerRepository:    usecases.Repositories.ScorerRepository,
		hasIdpSetup:         usecases.Repositories.CognitoClient != nil,
	}
}
