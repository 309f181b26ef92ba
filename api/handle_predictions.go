package api

import (
	"mime/multipart"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/hydroscope/hydroscope-backend/dto"
	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/pure_utils"
	"github.com/hydroscope/hydroscope-backend/usecases"
)

type PredictionForm struct {
	Image *multipart.FileHeader `form:"image"`
	Csv   *multipart.FileHeader `form:"csv"`
}

type BatchPredictionForm struct {
	Images []*multipart.FileHeader `form:"images" binding:"required"`
	Csv    *multipart.FileHeader   `form:"csv" binding:"required"`
}

func handlePredict(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var form PredictionForm
		if err := c.ShouldBind(&form); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewPredictionUsecase()
		record, _, err := usecase.CreatePrediction(ctx, usecases.PredictionInput{
			Image: form.Image,
			Csv:   form.Csv,
		})
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"prediction": dto.AdaptPredictionDto(record),
		})
	}
}

func handlePredictBatch(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var form BatchPredictionForm
		if err := c.ShouldBind(&form); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewPredictionUsecase()
		records, err := usecase.CreateBatchPredictions(ctx, form.Images, form.Csv)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"count":       len(records),
			"predictions": pure_utils.Map(records, dto.AdaptPredictionDto),
		})
	}
}

func handleListPredictions(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var params struct {
			Limit  int `form:"limit"`
			Offset int `form:"offset"`
		}
		if err := c.ShouldBind(&params); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := uc.NewPredictionUsecase()
		records, total := usecase.ListPredictionHistory(ctx, params.Limit, params.Offset)

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"count":       total,
			"predictions": pure_utils.Map(records, dto.AdaptPredictionDto),
		})
	}
}

func handleGetPrediction(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		predictionId := c.Param("prediction_id")

		usecase := uc.NewPredictionUsecase()
		record, err := usecase.GetPrediction(ctx, predictionId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"prediction": dto.AdaptPredictionDto(record),
		})
	}
}
