package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hydroscope/hydroscope-backend/models"
)

type IdentityProvider struct {
	mock.Mock
}

func (p *IdentityProvider) SignUp(ctx context.Context, email, password string) (models.SignUpResult, error) {
	args := p.Called(email, password)
	return args.Get(0).(models.SignUpResult), args.Error(1)
}

func (p *IdentityProvider) ConfirmSignUp(ctx context.Context, email, code string) error {
	args := p.Called(email, code)
	return args.Error(0)
}

func (p *IdentityProvider) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	args := p.Called(email, password)
	return args.Get(0).(models.LoginResult), args.Error(1)
}

func (p *IdentityProvider) CompleteNewPassword(ctx context.Context, email, newPassword, session string) (models.AuthTokens, error) {
	args := p.Called(email, newPassword, session)
	return args.Get(0).(models.AuthTokens), args.Error(1)
}

func (p *IdentityProvider) ForgotPassword(ctx context.Context, email string) (models.PasswordResetDelivery, error) {
	args := p.Called(email)
	return args.Get(0).(models.PasswordResetDelivery), args.Error(1)
}

func (p *IdentityProvider) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	args := p.Called(email, code, newPassword)
	return args.Error(0)
}
