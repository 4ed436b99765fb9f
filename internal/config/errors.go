package config

import "github.com/ayoisaiah/doro/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing config file failed",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid %s duration: %v",
	}

	errShortBreakTooLong = &apperr.Error{
		Message: "short break duration (%v) must be less than pomodoro duration (%v)",
	}

	errLongBreakTooShort = &apperr.Error{
		Message: "long break duration (%v) must not be less than short break duration (%v)",
	}

	errInvalidColor = &apperr.Error{
		Message: "%s color must be a valid hex color code (e.g. #FF0000), got %s",
	}

	errEmptyMsg = &apperr.Error{
		Message: "%s message cannot be empty",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be between %v and %v",
	}

	errUnknownFlower = &apperr.Error{
		Message: "unknown flower: %s (choose one of %s)",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver: %s (choose one of bolt, sqlite, memory)",
	}
)
