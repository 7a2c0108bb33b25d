package strategy

import "fmt"

// ErrorKind classifies a failed generation attempt.
type ErrorKind string

const (
	ErrAPIUnavailable    ErrorKind = "api_unavailable"
	ErrAuthFailed        ErrorKind = "auth_failed"
	ErrRateLimited       ErrorKind = "rate_limited"
	ErrTimeout           ErrorKind = "timeout"
	ErrMalformedResponse ErrorKind = "malformed_response"
	ErrInvalidRequest    ErrorKind = "invalid_request"
)

// GenerationError is the only error type Generate returns. The UI maps
// Kind to a user-facing message and surfaces the underlying cause verbatim.
type GenerationError struct {
	Kind  ErrorKind
	Cause error
}

func (e *GenerationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("generation failed: %s", e.Kind)
	}
	return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Message is the user-facing explanation for the error kind.
func (e *GenerationError) Message() string {
	switch e.Kind {
	case ErrAuthFailed:
		return "The API rejected our credentials. Check ANTHROPIC_API_KEY and restart the app."
	case ErrRateLimited:
		return "The API is rate limiting us right now. Wait a moment, then submit the form again."
	case ErrTimeout:
		return "The request took too long and was cancelled. Try again."
	case ErrMalformedResponse:
		return "The API returned something we could not read. Try again."
	case ErrInvalidRequest:
		return "The form input was invalid."
	default:
		return "The API is unreachable. Try again in a moment."
	}
}
