package usecases

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/usecases/tracking"
	"github.com/hydroscope/hydroscope-backend/utils"
)

// identityProvider is the slice of the Cognito client the usecase needs.
type identityProvider interface {
	SignUp(ctx context.Context, email, password string) (models.SignUpResult, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	Login(ctx context.Context, email, password string) (models.LoginResult, error)
	CompleteNewPassword(ctx context.Context, email, newPassword, session string) (models.AuthTokens, error)
	ForgotPassword(ctx context.Context, email string) (models.PasswordResetDelivery, error)
	ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error
}

// AuthUsecase delegates every credential operation to the identity provider.
// It holds no password or token state of its own.
type AuthUsecase struct {
	idp identityProvider
}

func (uc AuthUsecase) checkConfigured() error {
	if uc.idp == nil {
		return errors.Wrap(models.UnprocessableEntityError,
			"authentication is not configured on this deployment")
	}
	return nil
}

func (uc AuthUsecase) Register(ctx context.Context, email, password string) (models.SignUpResult, error) {
	if err := uc.checkConfigured(); err != nil {
		return models.SignUpResult{}, err
	}

	result, err := uc.idp.SignUp(ctx, email, password)
	if err != nil {
		return models.SignUpResult{}, err
	}

	tracking.Identify(ctx, result.UserSub, map[string]any{"email": email})
	tracking.TrackEventWithUserId(ctx, models.AnalyticsUserRegistered, result.UserSub,
		map[string]any{"confirmed": result.UserConfirmed})

	return result, nil
}

func (uc AuthUsecase) ConfirmRegistration(ctx context.Context, email, code string) error {
	if err := uc.checkConfigured(); err != nil {
		return err
	}
	return uc.idp.ConfirmSignUp(ctx, email, code)
}

// Login returns either tokens or a pending challenge, never both.
func (uc AuthUsecase) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	if err := uc.checkConfigured(); err != nil {
		return models.LoginResult{}, err
	}

	result, err := uc.idp.Login(ctx, email, password)
	if err != nil {
		return models.LoginResult{}, err
	}

	if result.Tokens != nil {
		tracking.TrackEventWithUserId(ctx, models.AnalyticsUserLoggedIn,
			loginTrackingId(result.Tokens.IdToken, email), nil)
	}
	return result, nil
}

// loginTrackingId prefers the subject claim of the freshly issued id token,
// so login events land on the same profile Register identified.
func loginTrackingId(idToken, email string) string {
	if identity, err := utils.DecodeTokenClaims(idToken); err == nil && identity.Subject != "" {
		return identity.Subject
	}
	return email
}

func (uc AuthUsecase) CompleteNewPassword(ctx context.Context, email, newPassword, session string) (models.AuthTokens, error) {
	if err := uc.checkConfigured(); err != nil {
		return models.AuthTokens{}, err
	}

	tokens, err := uc.idp.CompleteNewPassword(ctx, email, newPassword, session)
	if err != nil {
		return models.AuthTokens{}, err
	}

	tracking.TrackEventWithUserId(ctx, models.AnalyticsUserLoggedIn,
		loginTrackingId(tokens.IdToken, email), map[string]any{"challenge": models.ChallengeNewPasswordRequired})

	return tokens, nil
}

func (uc AuthUsecase) ForgotPassword(ctx context.Context, email string) (models.PasswordResetDelivery, error) {
	if err := uc.checkConfigured(); err != nil {
		return models.PasswordResetDelivery{}, err
	}
	return uc.idp.ForgotPassword(ctx, email)
}

func (uc AuthUsecase) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	if err := uc.checkConfigured(); err != nil {
		return err
	}
	return uc.idp.ConfirmForgotPassword(ctx, email, code, newPassword)
}
