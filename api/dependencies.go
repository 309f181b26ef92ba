package api

import (
	"github.com/segmentio/analytics-go/v3"

	"github.com/hydroscope/hydroscope-backend/utils"
)

type dependencies struct {
	Authentication utils.Authentication
	SegmentClient  analytics.Client
}

func InitDependencies(conf Configuration) dependencies {
	if conf.DisableSegment {
		conf.SegmentWriteKey = ""
	}
	// An empty write key yields a client that swallows events, so tracking
	// calls need no enabled check.
	segmentClient := analytics.New(conf.SegmentWriteKey)

	return dependencies{
		Authentication: utils.NewAuthentication(),
		SegmentClient:  segmentClient,
	}
}
