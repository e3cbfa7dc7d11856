package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrTeamDataUnavailable aborts a report: the team bundle could not be fetched.
	ErrTeamDataUnavailable = errors.New("team data unavailable")
)
