package notify

import "github.com/ayoisaiah/focusring/internal/apperr"

var (
	errInvalidDelay = &apperr.Error{
		Message: "notification delay must be positive, got %v",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "sound file %q must be in mp3, ogg, flac, or wav format",
	}

	errOpenSound = &apperr.Error{
		Message: "unable to open sound file %q",
	}
)
