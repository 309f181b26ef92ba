package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hydroscope/hydroscope-backend/models"
)

func TestPresentError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	t.Run("nil error renders nothing", func(t *testing.T) {
		r := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(r)

		assert.False(t, presentError(ctx, c, nil))
		assert.Empty(t, r.Body.String())
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"bad parameter", errors.Wrap(models.BadParameterError, "invalid days"), http.StatusBadRequest},
		{"unauthorized", errors.WithStack(models.UnAuthorizedError), http.StatusUnauthorized},
		{"forbidden", errors.WithStack(models.ForbiddenError), http.StatusForbidden},
		{"not found", errors.WithStack(models.ErrPredictionNotFound), http.StatusNotFound},
		{"conflict", errors.WithStack(models.ErrUserAlreadyExists), http.StatusConflict},
		{"unprocessable entity", errors.WithStack(models.UnprocessableEntityError), http.StatusUnprocessableEntity},
		{"deadline exceeded", context.DeadlineExceeded, http.StatusRequestTimeout},
		{"anything else is a 500", assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(r)

			assert.True(t, presentError(ctx, c, tt.err))
			assert.Equal(t, tt.status, r.Code)
			assert.JSONEq(t,
				fmt.Sprintf(`{"success": false, "error": %q}`, tt.err.Error()),
				r.Body.String())
		})
	}

	t.Run("scorer failures are internal errors", func(t *testing.T) {
		r := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(r)

		err := errors.Wrap(models.ErrScorerFailed, "scorer predict.py: exit status 2")
		assert.True(t, presentError(ctx, c, err))
		assert.Equal(t, http.StatusInternalServerError, r.Code)
	})
}
