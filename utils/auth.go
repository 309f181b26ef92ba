package utils

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hydroscope/hydroscope-backend/models"
)

const decodedClaimsCacheSize = 512

// Authentication attributes requests from an optional bearer token. Tokens
// are issued and trusted by the identity provider; the backend only decodes
// them structurally, it never verifies signatures. Requests without a token
// stay anonymous and proceed.
type Authentication struct {
	cache *lru.Cache[string, models.IdentityClaims]
}

func NewAuthentication() Authentication {
	cache, _ := lru.New[string, models.IdentityClaims](decodedClaimsCacheSize)
	return Authentication{cache: cache}
}

func (a Authentication) Middleware(c *gin.Context) {
	ctx := c.Request.Context()

	token, err := ParseAuthorizationBearerHeader(c.Request.Header)
	if err != nil {
		_ = c.Error(fmt.Errorf("could not parse authorization header: %w", err))
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if token == "" {
		c.Next()
		return
	}

	identity, err := a.DecodeClaims(token)
	if err != nil {
		// Attribution only: an undecodable token does not block the request.
		LoggerFromContext(ctx).DebugContext(ctx, "could not decode bearer token claims", "error", err)
		c.Next()
		return
	}

	newContext := StoreIdentityInContext(ctx, identity)
	if attr, ok := identityAttr(identity); ok {
		logger := LoggerFromContext(newContext).With(attr)
		newContext = StoreLoggerInContext(newContext, logger)
	}
	c.Request = c.Request.WithContext(newContext)
	c.Next()
}

// DecodeClaims extracts the subject/username/email claims without verifying
// the token signature. Decoded results are cached by raw token.
func (a Authentication) DecodeClaims(token string) (models.IdentityClaims, error) {
	if identity, ok := a.cache.Get(token); ok {
		return identity, nil
	}

	identity, err := DecodeTokenClaims(token)
	if err != nil {
		return models.IdentityClaims{}, err
	}

	a.cache.Add(token, identity)
	return identity, nil
}

// DecodeTokenClaims parses a JWT without verifying its signature.
func DecodeTokenClaims(token string) (models.IdentityClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return models.IdentityClaims{}, err
	}

	identity := models.IdentityClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		identity.Subject = sub
	}
	if username, ok := claims["username"].(string); ok {
		identity.Username = username
	} else if username, ok := claims["cognito:username"].(string); ok {
		identity.Username = username
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	return identity, nil
}

func identityAttr(identity models.IdentityClaims) (attr slog.Attr, ok bool) {
	if identity.Email != "" {
		return slog.String("Email", identity.Email), true
	}
	if identity.Username != "" {
		return slog.String("Username", identity.Username), true
	}
	return slog.Attr{}, false
}

func ParseAuthorizationBearerHeader(header http.Header) (string, error) {
	authorization := header.Get("Authorization")
	if authorization == "" {
		return "", nil
	}

	authHeader := strings.Split(header.Get("Authorization"), "Bearer ")
	if len(authHeader) != 2 {
		return "", fmt.Errorf("malformed token: %w", models.UnAuthorizedError)
	}
	return authHeader[1], nil
}
