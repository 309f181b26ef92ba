package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroscope/hydroscope-backend/models"
)

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestAuthenticationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	bearer := signedTestToken(t, jwt.MapClaims{
		"sub":   "user-1",
		"email": "ana@rivers.example.org",
	})

	tests := []struct {
		name             string
		authorization    string
		expectedStatus   int
		expectedIdentity models.IdentityClaims
	}{
		{
			name:             "requests without a token stay anonymous",
			authorization:    "",
			expectedStatus:   http.StatusOK,
			expectedIdentity: models.IdentityClaims{},
		},
		{
			name:           "bearer token attributes the request",
			authorization:  "Bearer " + bearer,
			expectedStatus: http.StatusOK,
			expectedIdentity: models.IdentityClaims{
				Subject: "user-1",
				Email:   "ana@rivers.example.org",
			},
		},
		{
			name:             "undecodable token does not block the request",
			authorization:    "Bearer not-a-jwt",
			expectedStatus:   http.StatusOK,
			expectedIdentity: models.IdentityClaims{},
		},
		{
			name:           "malformed authorization header is rejected",
			authorization:  "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := NewAuthentication()

			w := httptest.NewRecorder()
			_, engine := gin.CreateTestContext(w)
			engine.GET("/test", auth.Middleware, func(c *gin.Context) {
				assert.Equal(t, tt.expectedIdentity, IdentityFromContext(c.Request.Context()))
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestParseAuthorizationBearerHeader(t *testing.T) {
	t.Run("nominal", func(t *testing.T) {
		header := http.Header{}
		header.Add("Authorization", "Bearer TOKEN")

		authorization, err := ParseAuthorizationBearerHeader(header)
		assert.NoError(t, err)
		assert.Equal(t, "TOKEN", authorization)
	})

	t.Run("empty header", func(t *testing.T) {
		authorization, err := ParseAuthorizationBearerHeader(http.Header{})
		assert.NoError(t, err)
		assert.Empty(t, authorization)
	})

	t.Run("bad bearer format", func(t *testing.T) {
		header := http.Header{}
		header.Add("Authorization", "MalformedBearer")

		_, err := ParseAuthorizationBearerHeader(header)
		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})
}

func TestDecodeTokenClaims(t *testing.T) {
	t.Run("cognito shaped token", func(t *testing.T) {
		token := signedTestToken(t, jwt.MapClaims{
			"sub":              "4f5a56e1-0d33-4b92-a7b7-9a3dc8a645cd",
			"cognito:username": "ana",
			"email":            "ana@rivers.example.org",
		})

		identity, err := DecodeTokenClaims(token)
		assert.NoError(t, err)
		assert.Equal(t, models.IdentityClaims{
			Subject:  "4f5a56e1-0d33-4b92-a7b7-9a3dc8a645cd",
			Username: "ana",
			Email:    "ana@rivers.example.org",
		}, identity)
	})

	t.Run("plain username claim wins over the cognito one", func(t *testing.T) {
		token := signedTestToken(t, jwt.MapClaims{
			"username":         "ana",
			"cognito:username": "someone-else",
		})

		identity, err := DecodeTokenClaims(token)
		assert.NoError(t, err)
		assert.Equal(t, "ana", identity.Username)
	})

	t.Run("garbage is an error", func(t *testing.T) {
		_, err := DecodeTokenClaims("not-a-jwt")
		assert.Error(t, err)
	})
}
