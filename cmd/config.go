package cmd

import (
	"errors"
	"time"
)

// CompiledConfig carries values baked into the binary through ldflags.
type CompiledConfig struct {
	Version         string
	SegmentWriteKey string
}

type ServerConfig struct {
	loggingFormat       string
	sentryDsn           string
	enableTracing       bool
	predictionBucketUrl string
	tempUploadDir       string
	maxBatchImages      int
	scorerPythonBin     string
	scorerScriptsDir    string
	scorerTimeout       time.Duration
	scorerUseS3Models   bool
	awsRegion           string
	awsAccessKeyId      string
	awsSecretAccessKey  string
	awsSessionToken     string
	s3Bucket            string
	enableDynamoDb      bool
	cognitoClientId     string
	cognitoClientSecret string
}

func (config ServerConfig) Validate() error {
	if config.maxBatchImages <= 0 {
		return errors.New("maxBatchImages must be positive")
	}
	if config.scorerTimeout <= 0 {
		return errors.New("scorerTimeout must be positive")
	}
	if (config.awsAccessKeyId == "") != (config.awsSecretAccessKey == "") {
		return errors.New("awsAccessKeyId and awsSecretAccessKey must be set together")
	}
	return nil
}
