package models

// ChallengeNewPasswordRequired is the one IdP challenge the API surfaces as
// a distinguished state instead of an error: the caller must complete the
// flow with a new password and the returned session.
const ChallengeNewPasswordRequired = "NEW_PASSWORD_REQUIRED"

// AuthTokens is a successful Cognito authentication result.
type AuthTokens struct {
	AccessToken  string
	IdToken      string
	RefreshToken string
	ExpiresIn    int32
	TokenType    string
}

// AuthChallenge is returned instead of tokens when the IdP demands another
// step before issuing them.
type AuthChallenge struct {
	Challenge string
	Session   string
}

// LoginResult holds exactly one of Tokens or Challenge.
type LoginResult struct {
	Tokens    *AuthTokens
	Challenge *AuthChallenge
}

// SignUpResult echoes Cognito's registration outcome.
type SignUpResult struct {
	UserSub       string
	UserConfirmed bool
}

// PasswordResetDelivery describes where the reset code was sent.
type PasswordResetDelivery struct {
	Destination string
	Medium      string
}

// IdentityClaims are the structurally decoded claims of a bearer token.
// The token signature is never verified here: the IdP owns trust, these
// claims only attribute requests in logs and product tracking.
type IdentityClaims struct {
	Subject  string
	Username string
	Email    string
}
