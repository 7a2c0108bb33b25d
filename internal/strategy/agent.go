package strategy

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/contentpm/growth-pm-agent/internal/anthropic"
)

// Completer is the one outbound dependency of the agent: send a prompt,
// get the model's text back. Satisfied by *anthropic.Client.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Agent turns a validated Request into a parsed Result by making exactly
// one bounded call to the generation API. It holds no per-request state.
type Agent struct {
	client  Completer
	limiter *rate.Limiter
	timeout time.Duration
}

// NewAgent creates an agent with the given call timeout and an outbound
// rate limit of rpm requests per minute.
func NewAgent(client Completer, timeout time.Duration, rpm int) *Agent {
	return &Agent{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		timeout: timeout,
	}
}

// Generate validates the request, waits for the rate limiter, makes one
// API call bounded by the configured timeout, and parses the reply. No
// automatic retry on failure; the error is always a *GenerationError and
// the caller decides whether to ask the user to try again.
func (a *Agent) Generate(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, &GenerationError{Kind: ErrInvalidRequest, Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// The limiter wait shares the call deadline, so a saturated limiter
	// surfaces as a timeout rather than an unbounded stall.
	if err := a.limiter.Wait(ctx); err != nil {
		return Result{}, classify(err)
	}

	raw, err := a.client.Complete(ctx, BuildPrompt(req))
	if err != nil {
		return Result{}, classify(err)
	}

	return ParseResponse(raw), nil
}

// classify maps transport and API failures onto the generation error
// taxonomy the UI reports from.
func classify(err error) *GenerationError {
	// Both cancellation causes mean the call was aborted before the API
	// answered: the deadline fired, or the client went away. Neither is
	// an API outage.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &GenerationError{Kind: ErrTimeout, Cause: err}
	}
	if errors.Is(err, anthropic.ErrMalformed) {
		return &GenerationError{Kind: ErrMalformedResponse, Cause: err}
	}

	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &GenerationError{Kind: ErrAuthFailed, Cause: err}
		case http.StatusTooManyRequests:
			return &GenerationError{Kind: ErrRateLimited, Cause: err}
		}
		return &GenerationError{Kind: ErrAPIUnavailable, Cause: err}
	}

	return &GenerationError{Kind: ErrAPIUnavailable, Cause: err}
}
