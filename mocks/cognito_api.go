package mocks

import (
	"context"

	cognitoidp "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/stretchr/testify/mock"
)

// CognitoApi mocks the slice of the Cognito SDK client the idp package uses.
type CognitoApi struct {
	mock.Mock
}

func (a *CognitoApi) SignUp(ctx context.Context, params *cognitoidp.SignUpInput,
	optFns ...func(*cognitoidp.Options),
) (*cognitoidp.SignUpOutput, error) {
	args := a.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cognitoidp.SignUpOutput), args.Error(1)
}

func (a *CognitoApi) ConfirmSignUp(ctx context.Context, params *cognitoidp.ConfirmSignUpInput,
	optFns ...func(*cognitoidp.Options),
) (*cognitoidp.ConfirmSignUpOutput, error) {
	args := a.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cognitoidp.ConfirmSignUpOutput), args.Error(1)
}

func (a *CognitoApi) InitiateAuth(ctx context.Context, params *cognitoidp.InitiateAuthInput,
	optFns ...func(*cognitoidp.Options),
) (*cognitoidp.InitiateAuthOutput, error) {
	args := a.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cognitoidp.InitiateAuthOutput), args.Error(1)
}

func (a *CognitoApi) RespondToAuthChallenge(ctx context.Context, params *cognitoidp.RespondToAuthChallengeInput,
	optFns ...func(*cognitoidp.Options),
) (*cognitoidp.RespondToAuthChallengeOutput, error) {
	args := a.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cognitoidp.RespondToAuthChallengeOutput), args.Error(1)
}

func (a *CognitoApi) ForgotPassword(ctx context.Context, params *cognitoidp.ForgotPasswordInput,
	optFns ...func(*cognitoidp.Options),
) (*cognitoidp.ForgotPasswordOutput, error) {
	args := a.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cognitoidp.ForgotPasswordOutput), args.Error(1)
}

func (a *CognitoApi) ConfirmForgotPassword(ctx context.Context, params *cognitoidp.ConfirmForgotPasswordInput,
	optFns ...func(*cognitoidp.Options),
) (*cognitoidp.ConfirmForgotPasswordOutput, error) {
	args := a.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cognitoidp.ConfirmForgotPasswordOutput), args.Error(1)
}
