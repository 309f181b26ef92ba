package tracking

import (
	"context"

	"github.com/segmentio/analytics-go/v3"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/utils"
)

// Product analytics, sent to Segment through the client stored in context.
// Enqueue failures are logged and dropped: tracking never interferes with
// the request that triggered it.

const anonymousId = "backend"

func TrackEvent(ctx context.Context, event models.AnalyticsEvent, properties map[string]any) {
	identity := utils.IdentityFromContext(ctx)
	trackEvent(ctx, identity.Subject, event, properties)
}

func TrackEventWithUserId(ctx context.Context, event models.AnalyticsEvent,
	userId string, properties map[string]any,
) {
	trackEvent(ctx, userId, event, properties)
}

func trackEvent(ctx context.Context, userId string, event models.AnalyticsEvent, properties map[string]any) {
	track := analytics.Track{
		Event:      string(event),
		Properties: analytics.Properties(properties),
	}
	if userId != "" {
		track.UserId = userId
	} else {
		track.AnonymousId = anonymousId
	}

	client := utils.SegmentClientFromContext(ctx)
	if err := client.Enqueue(track); err != nil {
		utils.LoggerFromContext(ctx).DebugContext(ctx, "failed to enqueue segment track event",
			"event", string(event), "error", err.Error())
	}
}

func Identify(ctx context.Context, userId string, traits map[string]any) {
	client := utils.SegmentClientFromContext(ctx)
	err := client.Enqueue(analytics.Identify{
		UserId: userId,
		Traits: analytics.Traits(traits),
	})
	if err != nil {
		utils.LoggerFromContext(ctx).DebugContext(ctx, "failed to enqueue segment identify",
			"user_id", userId, "error", err.Error())
	}
}
