package dto

import (
	"github.com/hydroscope/hydroscope-backend/models"
)

type RegisterBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ConfirmRegistrationBody struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type LoginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CompleteNewPasswordBody struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required"`
	Session     string `json:"session" binding:"required"`
}

type ForgotPasswordBody struct {
	Email string `json:"email" binding:"required,email"`
}

type ConfirmForgotPasswordBody struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type AuthTokensDto struct {
	AccessToken  string `json:"accessToken"`
	IdToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int32  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

func AdaptAuthTokensDto(tokens models.AuthTokens) AuthTokensDto {
	return AuthTokensDto{
		AccessToken:  tokens.AccessToken,
		IdToken:      tokens.IdToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		TokenType:    tokens.TokenType,
	}
}

type SignUpResultDto struct {
	UserSub       string `json:"userSub"`
	UserConfirmed bool   `json:"userConfirmed"`
}

func AdaptSignUpResultDto(result models.SignUpResult) SignUpResultDto {
	return SignUpResultDto{
		UserSub:       result.UserSub,
		UserConfirmed: result.UserConfirmed,
	}
}

type PasswordResetDeliveryDto struct {
	Destination string `json:"destination"`
	Medium      string `json:"medium"`
}

func AdaptPasswordResetDeliveryDto(delivery models.PasswordResetDelivery) PasswordResetDeliveryDto {
	return PasswordResetDeliveryDto{
		Destination: delivery.Destination,
		Medium:      delivery.Medium,
	}
}
