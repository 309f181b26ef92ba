package idp

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognitoidp "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	cognitotypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/cockroachdb/errors"

	"github.com/hydroscope/hydroscope-backend/models"
)

// cognitoApi is the slice of the Cognito SDK the client uses.
type cognitoApi interface {
	SignUp(ctx context.Context, params *cognitoidp.SignUpInput,
		optFns ...func(*cognitoidp.Options)) (*cognitoidp.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, params *cognitoidp.ConfirmSignUpInput,
		optFns ...func(*cognitoidp.Options)) (*cognitoidp.ConfirmSignUpOutput, error)
	InitiateAuth(ctx context.Context, params *cognitoidp.InitiateAuthInput,
		optFns ...func(*cognitoidp.Options)) (*cognitoidp.InitiateAuthOutput, error)
	RespondToAuthChallenge(ctx context.Context, params *cognitoidp.RespondToAuthChallengeInput,
		optFns ...func(*cognitoidp.Options)) (*cognitoidp.RespondToAuthChallengeOutput, error)
	ForgotPassword(ctx context.Context, params *cognitoidp.ForgotPasswordInput,
		optFns ...func(*cognitoidp.Options)) (*cognitoidp.ForgotPasswordOutput, error)
	ConfirmForgotPassword(ctx context.Context, params *cognitoidp.ConfirmForgotPasswordInput,
		optFns ...func(*cognitoidp.Options)) (*cognitoidp.ConfirmForgotPasswordOutput, error)
}

// CognitoClient delegates all credential handling to a Cognito user pool.
// Passwords pass through to Cognito and are never stored or checked here.
type CognitoClient struct {
	clientId     string
	clientSecret string
	api          cognitoApi
}

func NewCognitoClient(clientId, clientSecret string, api cognitoApi) *CognitoClient {
	return &CognitoClient{
		clientId:     clientId,
		clientSecret: clientSecret,
		api:          api,
	}
}

// secretHash computes the SECRET_HASH parameter Cognito requires when the
// app client has a secret: base64(HMAC-SHA256(username + clientId, secret)).
func (c *CognitoClient) secretHash(username string) *string {
	if c.clientSecret == "" {
		return nil
	}
	mac := hmac.New(sha256.New, []byte(c.clientSecret))
	mac.Write([]byte(username + c.clientId))
	return aws.String(base64.StdEncoding.EncodeToString(mac.Sum(nil)))
}

func (c *CognitoClient) SignUp(ctx context.Context, email, password string) (models.SignUpResult, error) {
	out, err := c.api.SignUp(ctx, &cognitoidp.SignUpInput{
		ClientId:   aws.String(c.clientId),
		Username:   aws.String(email),
		Password:   aws.String(password),
		SecretHash: c.secretHash(email),
		UserAttributes: []cognitotypes.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		},
	})
	if err != nil {
		return models.SignUpResult{}, mapCognitoError(err)
	}

	return models.SignUpResult{
		UserSub:       aws.ToString(out.UserSub),
		UserConfirmed: out.UserConfirmed,
	}, nil
}

func (c *CognitoClient) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := c.api.ConfirmSignUp(ctx, &cognitoidp.ConfirmSignUpInput{
		ClientId:         aws.String(c.clientId),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		SecretHash:       c.secretHash(email),
	})
	return mapCognitoError(err)
}

// Login runs the USER_PASSWORD_AUTH flow. A NEW_PASSWORD_REQUIRED challenge
// is a normal outcome, not an error.
func (c *CognitoClient) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	params := map[string]string{
		"USERNAME": email,
		"PASSWORD": password,
	}
	if hash := c.secretHash(email); hash != nil {
		params["SECRET_HASH"] = *hash
	}

	out, err := c.api.InitiateAuth(ctx, &cognitoidp.InitiateAuthInput{
		ClientId:       aws.String(c.clientId),
		AuthFlow:       cognitotypes.AuthFlowTypeUserPasswordAuth,
		AuthParameters: params,
	})
	if err != nil {
		return models.LoginResult{}, mapCognitoError(err)
	}

	if out.ChallengeName != "" {
		return models.LoginResult{
			Challenge: &models.AuthChallenge{
				Challenge: string(out.ChallengeName),
				Session:   aws.ToString(out.Session),
			},
		}, nil
	}
	if out.AuthenticationResult == nil {
		return models.LoginResult{}, errors.New("cognito returned neither tokens nor a challenge")
	}

	tokens := adaptAuthTokens(out.AuthenticationResult)
	return models.LoginResult{Tokens: &tokens}, nil
}

// CompleteNewPassword answers the NEW_PASSWORD_REQUIRED challenge using the
// session handed back by Login.
func (c *CognitoClient) CompleteNewPassword(ctx context.Context, email, newPassword, session string) (models.AuthTokens, error) {
	responses := map[string]string{
		"USERNAME":     email,
		"NEW_PASSWORD": newPassword,
	}
	if hash := c.secretHash(email); hash != nil {
		responses["SECRET_HASH"] = *hash
	}

	out, err := c.api.RespondToAuthChallenge(ctx, &cognitoidp.RespondToAuthChallengeInput{
		ClientId:           aws.String(c.clientId),
		ChallengeName:      cognitotypes.ChallengeNameTypeNewPasswordRequired,
		ChallengeResponses: responses,
		Session:            aws.String(session),
	})
	if err != nil {
		return models.AuthTokens{}, mapCognitoError(err)
	}
	if out.AuthenticationResult == nil {
		return models.AuthTokens{}, errors.New("cognito did not return tokens after the password challenge")
	}

	return adaptAuthTokens(out.AuthenticationResult), nil
}

func (c *CognitoClient) ForgotPassword(ctx context.Context, email string) (models.PasswordResetDelivery, error) {
	out, err := c.api.ForgotPassword(ctx, &cognitoidp.ForgotPasswordInput{
		ClientId:   aws.String(c.clientId),
		Username:   aws.String(email),
		SecretHash: c.secretHash(email),
	})
	if err != nil {
		return models.PasswordResetDelivery{}, mapCognitoError(err)
	}

	delivery := models.PasswordResetDelivery{}
	if out.CodeDeliveryDetails != nil {
		delivery.Destination = aws.ToString(out.CodeDeliveryDetails.Destination)
		delivery.Medium = string(out.CodeDeliveryDetails.DeliveryMedium)
	}
	return delivery, nil
}

func (c *CognitoClient) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	_, err := c.api.ConfirmForgotPassword(ctx, &cognitoidp.ConfirmForgotPasswordInput{
		ClientId:         aws.String(c.clientId),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(newPassword),
		SecretHash:       c.secretHash(email),
	})
	return mapCognitoError(err)
}

// mapCognitoError folds the SDK's modeled exceptions into the error
// categories the presentation layer knows. UserNotFound maps to invalid
// credentials so login probing cannot enumerate accounts.
func mapCognitoError(err error) error {
	if err == nil {
		return nil
	}

	var (
		usernameExists   *cognitotypes.UsernameExistsException
		notAuthorized    *cognitotypes.NotAuthorizedException
		userNotFound     *cognitotypes.UserNotFoundException
		userNotConfirmed *cognitotypes.UserNotConfirmedException
		codeMismatch     *cognitotypes.CodeMismatchException
		expiredCode      *cognitotypes.ExpiredCodeException
		invalidPassword  *cognitotypes.InvalidPasswordException
		invalidParameter *cognitotypes.InvalidParameterException
	)
	switch {
	case errors.As(err, &usernameExists):
		return errors.Wrap(models.ErrUserAlreadyExists, err.Error())
	case errors.As(err, &notAuthorized), errors.As(err, &userNotFound):
		return errors.Wrap(models.ErrInvalidCredentials, err.Error())
	case errors.As(err, &userNotConfirmed):
		return errors.Wrap(models.ErrUserNotConfirmed, err.Error())
	case errors.As(err, &codeMismatch), errors.As(err, &expiredCode):
		return errors.Wrap(models.ErrInvalidConfirmation, err.Error())
	case errors.As(err, &invalidPassword), errors.As(err, &invalidParameter):
		return errors.Wrap(models.BadParameterError, err.Error())
	}
	return err
}

func adaptAuthTokens(result *cognitotypes.AuthenticationResultType) models.AuthTokens {
	return models.AuthTokens{
		AccessToken:  aws.ToString(result.AccessToken),
		IdToken:      aws.ToString(result.IdToken),
		RefreshToken: aws.ToString(result.RefreshToken),
		ExpiresIn:    result.ExpiresIn,
		TokenType:    aws.ToString(result.TokenType),
	}
}
