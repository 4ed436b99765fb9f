package app

import "github.com/ayoisaiah/doro/internal/apperr"

var (
	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver: %s",
	}

	errUnknownFlower = &apperr.Error{
		Message: "unknown flower: %s",
	}

	errInvalidSound = &apperr.Error{
		Message: "--sound must be 'on' or 'off', got %q",
	}

	errInvalidVolume = &apperr.Error{
		Message: "--volume must be between 0 and 1, got %v",
	}

	errNoProfile = &apperr.Error{
		Message: "no profile yet: run doro once or pass --name",
	}

	errEmptyUsername = &apperr.Error{
		Message: "username cannot be empty",
	}

	errInvalidDate = &apperr.Error{
		Message: "unable to understand --date %q",
	}
)
