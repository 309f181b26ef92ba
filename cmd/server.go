package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/hydroscope/hydroscope-backend/api"
	"github.com/hydroscope/hydroscope-backend/infra"
	"github.com/hydroscope/hydroscope-backend/repositories"
	"github.com/hydroscope/hydroscope-backend/repositories/idp"
	"github.com/hydroscope/hydroscope-backend/usecases"
	"github.com/hydroscope/hydroscope-backend/utils"
)

func RunServer(config CompiledConfig) error {
	// This is where we read the environment variables and set up the configuration for the application.
	apiConfig := api.Configuration{
		Env:                 utils.GetEnv("ENV", "development"),
		AppName:             "hydroscope-backend",
		ApiVersion:          config.Version,
		Port:                utils.GetRequiredEnv[string]("PORT"),
		DashboardUrl:        utils.GetEnv("DASHBOARD_URL", ""),
		RequestLoggingLevel: utils.GetEnv("REQUEST_LOGGING_LEVEL", "all"),
		SegmentWriteKey:     utils.GetEnv("SEGMENT_WRITE_KEY", config.SegmentWriteKey),
		DisableSegment:      utils.GetEnv("DISABLE_SEGMENT", false),
		DefaultTimeout:      time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 5)) * time.Second,
		PredictionTimeout:   time.Duration(utils.GetEnv("PREDICTION_TIMEOUT_SECOND", 60)) * time.Second,
		BatchTimeout:        time.Duration(utils.GetEnv("BATCH_TIMEOUT_SECOND", 300)) * time.Second,
		EnablePrometheus:    utils.GetEnv("ENABLE_PROMETHEUS", false),
	}
	serverConfig := ServerConfig{
		loggingFormat:       utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:           utils.GetEnv("SENTRY_DSN", ""),
		enableTracing:       utils.GetEnv("ENABLE_TRACING", false),
		predictionBucketUrl: utils.GetEnv("PREDICTION_BUCKET_URL", ""),
		tempUploadDir:       utils.GetEnv("TEMP_UPLOAD_DIR", ""),
		maxBatchImages:      utils.GetEnv("MAX_BATCH_IMAGES", 10),
		scorerPythonBin:     utils.GetEnv("SCORER_PYTHON_BIN", "python3"),
		scorerScriptsDir:    utils.GetEnv("SCORER_SCRIPTS_DIR", "."),
		scorerTimeout:       time.Duration(utils.GetEnv("SCORER_TIMEOUT_SECOND", 30)) * time.Second,
		scorerUseS3Models:   utils.GetEnv("SCORER_USE_S3_MODELS", false),
		awsRegion:           utils.GetEnv("AWS_REGION", ""),
		awsAccessKeyId:      utils.GetEnv("AWS_ACCESS_KEY_ID", ""),
		awsSecretAccessKey:  utils.GetEnv("AWS_SECRET_ACCESS_KEY", ""),
		awsSessionToken:     utils.GetEnv("AWS_SESSION_TOKEN", ""),
		s3Bucket:            utils.GetEnv("S3_BUCKET", ""),
		enableDynamoDb:      utils.GetEnv("ENABLE_DYNAMODB", false),
		cognitoClientId:     utils.GetEnv("COGNITO_CLIENT_ID", ""),
		cognitoClientSecret: utils.GetEnv("COGNITO_CLIENT_SECRET", ""),
	}
	if err := serverConfig.Validate(); err != nil {
		return err
	}

	logger := utils.NewLogger(serverConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(serverConfig.sentryDsn, apiConfig.Env, config.Version)
	defer sentry.Flush(3 * time.Second)

	tracingConfig := infra.TelemetryConfiguration{
		ApplicationName: apiConfig.AppName,
		Enabled:         serverConfig.enableTracing,
	}
	telemetryRessources, err := infra.InitTelemetry(tracingConfig, config.Version)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
	}

	repositoryOptions := []repositories.Option{
		repositories.WithScorer(repositories.ScorerConfig{
			PythonBin:   serverConfig.scorerPythonBin,
			ScriptsDir:  serverConfig.scorerScriptsDir,
			Timeout:     serverConfig.scorerTimeout,
			UseS3Models: serverConfig.scorerUseS3Models,
		}),
	}
	if serverConfig.predictionBucketUrl != "" {
		repositoryOptions = append(repositoryOptions,
			repositories.WithPredictionBucketUrl(serverConfig.predictionBucketUrl))
	}

	// The AWS SDK configuration is only resolved when at least one AWS-backed
	// component is enabled, so a bare local deployment needs no credentials.
	if serverConfig.s3Bucket != "" || serverConfig.enableDynamoDb || serverConfig.cognitoClientId != "" {
		awsConfig, err := infra.LoadAwsConfig(ctx, infra.AwsConfig{
			Region:          serverConfig.awsRegion,
			AccessKeyId:     serverConfig.awsAccessKeyId,
			SecretAccessKey: serverConfig.awsSecretAccessKey,
			SessionToken:    serverConfig.awsSessionToken,
		})
		if err != nil {
			utils.LogAndReportSentryError(ctx, err)
			return err
		}
		if serverConfig.s3Bucket != "" {
			repositoryOptions = append(repositoryOptions, repositories.WithObjectStorage(
				repositories.NewAwsS3Repository(infra.NewS3Client(awsConfig), serverConfig.s3Bucket, awsConfig.Region)))
		}
		if serverConfig.enableDynamoDb {
			repositoryOptions = append(repositoryOptions,
				repositories.WithDynamoDbClient(infra.NewDynamoDbClient(awsConfig)))
		}
		if serverConfig.cognitoClientId != "" {
			repositoryOptions = append(repositoryOptions, repositories.WithCognitoClient(
				idp.NewCognitoClient(serverConfig.cognitoClientId, serverConfig.cognitoClientSecret,
					infra.NewCognitoIdpClient(awsConfig))))
		}
	}

	repositories := repositories.NewRepositories(repositoryOptions...)

	uc := usecases.NewUsecases(repositories,
		usecases.WithApiVersion(config.Version),
		usecases.WithMaxBatchImages(serverConfig.maxBatchImages),
		usecases.WithTempUploadDir(serverConfig.tempUploadDir),
		usecases.WithPredictionBucketUrl(serverConfig.predictionBucketUrl),
	)

	deps := api.InitDependencies(apiConfig)

	router := api.InitRouterMiddlewares(ctx, apiConfig, deps.SegmentClient, telemetryRessources)
	server := api.NewServer(router, apiConfig, uc, deps.Authentication)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server",
			slog.String("version", config.Version), slog.String("port", apiConfig.Port))

		err := server.ListenAndServe()

		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while serving the app"))
		}

		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	deps.SegmentClient.Close()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(
			ctx,
			errors.Wrap(err, "Error while shutting down the server"),
		)
		return err
	}

	return err
}
