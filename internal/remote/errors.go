package remote

import "github.com/ayoisaiah/focusring/internal/apperr"

var (
	errParseEnv = &apperr.Error{
		Message: "unable to read upload settings from the environment",
	}

	errNoEndpoint = &apperr.Error{
		Message: "no upload endpoint configured: set FOCUS_UPLOAD_URL",
	}

	errRequest = &apperr.Error{
		Message: "session upload failed",
	}

	errUnexpectedStatus = &apperr.Error{
		Message: "session upload rejected with status %d: %s",
	}

	errDecodeResponse = &apperr.Error{
		Message: "unable to decode upload response",
	}
)
