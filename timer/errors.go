package timer

import "github.com/ayoisaiah/focusring/internal/apperr"

var (
	// ErrInvalidDuration is returned when a countdown is armed without a
	// positive target.
	ErrInvalidDuration = &apperr.Error{
		Message: "countdown duration must be greater than zero",
	}

	// ErrDurationTooLong is returned when a countdown target exceeds the
	// session ceiling.
	ErrDurationTooLong = &apperr.Error{
		Message: "countdown duration (%v) must not exceed the session limit (%v)",
	}

	// ErrInvalidMode is returned for an unknown mode name.
	ErrInvalidMode = &apperr.Error{
		Message: "unknown timer mode: %q (must be countdown or stopwatch)",
	}
)
