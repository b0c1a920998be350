package riot

import (
	"errors"
	"fmt"
)

// Sentinel errors for the Riot API error taxonomy. Callers classify
// failures with errors.Is; everything else is a transient network or
// server-side condition wrapped as a plain error.
var (
	ErrNotFound    = errors.New("player or data not found")
	ErrForbidden   = errors.New("invalid API key or forbidden access")
	ErrRateLimited = errors.New("rate limit exceeded, please try again later")
)

// statusError maps an HTTP status code to the matching sentinel error
func statusError(statusCode int, body string) error {
	switch statusCode {
	case 404:
		return ErrNotFound
	case 401, 403:
		return ErrForbidden
	case 429:
		return ErrRateLimited
	default:
		return fmt.Errorf("API request failed with status %d: %s", statusCode, body)
	}
}
