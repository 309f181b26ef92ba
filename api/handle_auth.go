package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/hydroscope/hydroscope-backend/dto"
	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/usecases"
)

func handleRegister(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.RegisterBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewAuthUsecase()
		result, err := usecase.Register(ctx, body.Email, body.Password)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"result":  dto.AdaptSignUpResultDto(result),
		})
	}
}

func handleConfirmRegistration(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.ConfirmRegistrationBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewAuthUsecase()
		if presentError(ctx, c, usecase.ConfirmRegistration(ctx, body.Email, body.Code)) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func handleLogin(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.LoginBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewAuthUsecase()
		result, err := usecase.Login(ctx, body.Email, body.Password)
		if presentError(ctx, c, err) {
			return
		}

		// A pending challenge is a successful call: the client continues the
		// flow with the session instead of a token.
		if result.Challenge != nil {
			c.JSON(http.StatusOK, gin.H{
				"success":   true,
				"challenge": result.Challenge.Challenge,
				"session":   result.Challenge.Session,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"tokens":  dto.AdaptAuthTokensDto(*result.Tokens),
		})
	}
}

func handleCompleteNewPassword(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CompleteNewPasswordBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewAuthUsecase()
		tokens, err := usecase.CompleteNewPassword(ctx, body.Email, body.NewPassword, body.Session)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"tokens":  dto.AdaptAuthTokensDto(tokens),
		})
	}
}

func handleForgotPassword(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.ForgotPasswordBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewAuthUsecase()
		delivery, err := usecase.ForgotPassword(ctx, body.Email)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"delivery": dto.AdaptPasswordResetDeliveryDto(delivery),
		})
	}
}

func handleConfirmForgotPassword(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.ConfirmForgotPasswordBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewAuthUsecase()
		if presentError(ctx, c, usecase.ConfirmForgotPassword(ctx, body.Email, body.Code, body.NewPassword)) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
