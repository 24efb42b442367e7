package config

import "github.com/ayoisaiah/focusring/internal/apperr"

var (
	errInitPaths = &apperr.Error{
		Message: "unable to locate the focusring directories",
	}

	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errPrompt = &apperr.Error{
		Message: "user prompt failed",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be between %v and %v",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid %s flag: %v",
	}

	errInvalidDurationFormat = &apperr.Error{
		Message: "invalid duration format: %s",
	}

	errInvalidMode = &apperr.Error{
		Message: "unknown timer mode %q: use countdown or stopwatch",
	}

	errInvalidDialMax = &apperr.Error{
		Message: "dial max duration (%v) must be positive and not exceed the session limit (%v)",
	}

	errInvalidSnap = &apperr.Error{
		Message: "dial snap interval (%v) must be positive and not exceed the dial max duration (%v)",
	}

	errInvalidTimezone = &apperr.Error{
		Message: "unknown time zone: %s",
	}

	errInvalidDateRange = &apperr.Error{
		Message: "the start time must be earlier than the end time",
	}

	errInvalidPeriod = &apperr.Error{
		Message: "unknown time period %q",
	}

	errInvalidStartDate = &apperr.Error{
		Message: "please provide a valid start date: %s",
	}

	errInvalidEndDate = &apperr.Error{
		Message: "please provide a valid end date: %s",
	}
)
