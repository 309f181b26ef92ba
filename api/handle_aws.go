package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/hydroscope/hydroscope-backend/dto"
	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/usecases"
)

func handleListS3Objects(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var params struct {
			Prefix string `form:"prefix"`
		}
		if err := c.ShouldBind(&params); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := uc.NewAwsDiagnosticsUsecase()
		listing, err := usecase.ListObjects(ctx, params.Prefix)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"listing": dto.AdaptS3ObjectListingDto(listing),
		})
	}
}

func handleDownloadS3Object(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		// Wildcard params keep their leading slash.
		key := strings.TrimPrefix(c.Param("object_key"), "/")
		if key == "" {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, "object key is required"))
			return
		}

		usecase := uc.NewAwsDiagnosticsUsecase()
		blob, err := usecase.DownloadObject(ctx, key)
		if presentError(ctx, c, err) {
			return
		}
		defer blob.ReadCloser.Close()

		c.DataFromReader(http.StatusOK, -1, "application/octet-stream", blob.ReadCloser, map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", blob.FileName),
		})
	}
}

func handleListDynamoTables(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewAwsDiagnosticsUsecase()
		tables, err := usecase.ListTables(ctx)
		if presentError(ctx, c, err) {
			return
		}

		if tables == nil {
			tables = []string{}
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"tables":  tables,
		})
	}
}

func handleDescribeDynamoTable(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		tableName := c.Param("table_name")

		usecase := uc.NewAwsDiagnosticsUsecase()
		table, err := usecase.DescribeTable(ctx, tableName)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"table":   dto.AdaptDynamoTableDescriptionDto(table),
		})
	}
}

func handleScanDynamoTable(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		tableName := c.Param("table_name")

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				presentError(ctx, c, errors.Wrapf(models.BadParameterError, "invalid limit value %q", raw))
				return
			}
			limit = parsed
		}

		usecase := uc.NewAwsDiagnosticsUsecase()
		result, err := usecase.ScanTable(ctx, tableName, limit)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"result":  dto.AdaptDynamoScanResultDto(result),
		})
	}
}
