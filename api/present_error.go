package api

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/utils"
)

// presentError renders err on the gin context and reports whether it did.
// Handlers are expected to return right after a true result. Every error body
// carries the same envelope the success responses do, with success set to
// false.
func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	// Attach the error so the request logger picks it up.
	_ = c.Error(err)

	switch {
	case errors.Is(err, models.BadParameterError):
		presentErrorStatus(c, http.StatusBadRequest, err)
	case errors.Is(err, models.UnAuthorizedError):
		presentErrorStatus(c, http.StatusUnauthorized, err)
	case errors.Is(err, models.ForbiddenError):
		presentErrorStatus(c, http.StatusForbidden, err)
	case errors.Is(err, models.NotFoundError):
		presentErrorStatus(c, http.StatusNotFound, err)
	case errors.Is(err, models.ConflictError):
		presentErrorStatus(c, http.StatusConflict, err)
	case errors.Is(err, models.UnprocessableEntityError):
		presentErrorStatus(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, context.DeadlineExceeded):
		presentErrorStatus(c, http.StatusRequestTimeout, err)
	default:
		utils.LogAndReportSentryError(ctx, err)
		presentErrorStatus(c, http.StatusInternalServerError, err)
	}
	return true
}

func presentErrorStatus(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
