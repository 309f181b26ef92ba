package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")

	// UnprocessableEntityError is rendered with the http status code 422
	UnprocessableEntityError = errors.New("unprocessable entity")
)

// Prediction pipeline errors. Everything the scorer subprocess can do wrong
// collapses into one caller-facing category; the sentinels below keep the
// cases distinguishable in logs and tests.
var (
	ErrNoPredictionInput = errors.Wrap(BadParameterError,
		"at least one input (image or sensor CSV) is required")

	// ErrScorerFailed covers non-zero exits and missing executables.
	ErrScorerFailed = errors.New("prediction script failed")

	// ErrScorerTimeout is raised after the subprocess is killed on deadline.
	ErrScorerTimeout = errors.Wrap(ErrScorerFailed, "prediction script timed out")

	// ErrInvalidScorerOutput is raised when a zero exit did not produce a
	// single JSON object on stdout.
	ErrInvalidScorerOutput = errors.Wrap(ErrScorerFailed, "invalid result format from prediction script")
)

var ErrPredictionNotFound = errors.Wrap(NotFoundError, "prediction not found")

var ErrNoSensorReadings = errors.Wrap(NotFoundError, "no sensor readings recorded")

// Auth errors surfaced from the identity provider.
var (
	ErrInvalidCredentials  = errors.Wrap(UnAuthorizedError, "invalid email or password")
	ErrUserNotConfirmed    = errors.Wrap(ForbiddenError, "user is not confirmed")
	ErrUserAlreadyExists   = errors.Wrap(ConflictError, "an account with this email already exists")
	ErrInvalidConfirmation = errors.Wrap(BadParameterError, "invalid confirmation code")
)
