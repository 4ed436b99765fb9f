package timer

import "github.com/ayoisaiah/doro/internal/apperr"

var (
	// ErrInvalidDuration is returned when a run is started without a
	// positive duration.
	ErrInvalidDuration = &apperr.Error{
		Message: "timer duration must be at least one second, got %v",
	}

	errUnknownSessionType = &apperr.Error{
		Message: "unknown session type: %s",
	}

	errNothingToRestart = &apperr.Error{
		Message: "no run has been started yet",
	}

	errParseSessionCmd = &apperr.Error{
		Message: "unable to parse settings.cmd option",
	}
)
