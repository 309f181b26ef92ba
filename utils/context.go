package utils

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/analytics-go/v3"

	"github.com/hydroscope/hydroscope-backend/models"
)

type ContextKey int

const (
	ContextKeyIdentity ContextKey = iota
	ContextKeyLogger
	ContextKeySegmentClient
	ContextKeyOpenTelemetryTracer
)

// IdentityFromContext returns the claims decoded from the request's bearer
// token, or the zero value for anonymous requests.
func IdentityFromContext(ctx context.Context) models.IdentityClaims {
	identity, _ := ctx.Value(ContextKeyIdentity).(models.IdentityClaims)
	return identity
}

func StoreIdentityInContext(ctx context.Context, identity models.IdentityClaims) context.Context {
	return context.WithValue(ctx, ContextKeyIdentity, identity)
}

func SegmentClientFromContext(ctx context.Context) analytics.Client {
	client, found := ctx.Value(ContextKeySegmentClient).(analytics.Client)
	if !found {
		logger := LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "Segment client not found in context: creating a new one to avoid nil pointer panic but it will not work")
		client = analytics.New("")
	}
	return client
}

func StoreSegmentClientInContext(ctx context.Context, client analytics.Client) context.Context {
	return context.WithValue(ctx, ContextKeySegmentClient, client)
}

func StoreSegmentClientInContextMiddleware(client analytics.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctxWithSegment := StoreSegmentClientInContext(c.Request.Context(), client)
		c.Request = c.Request.WithContext(ctxWithSegment)
	}
}
