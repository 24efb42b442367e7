package dial

import "github.com/ayoisaiah/focusring/internal/apperr"

var (
	errInvalidMaxDuration = &apperr.Error{
		Message: "dial max duration must be greater than zero",
	}

	errInvalidSnapInterval = &apperr.Error{
		Message: "dial snap interval (%v) must be greater than zero and at most the max duration (%v)",
	}
)
