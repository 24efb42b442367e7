package store

import "github.com/ayoisaiah/focusring/internal/apperr"

var (
	errFocusRunning = &apperr.Error{
		Message: "is focusring already running? Only one instance can be active at a time",
	}

	errDuplicateSession = &apperr.Error{
		Message: "session %s has already been recorded",
	}
)
