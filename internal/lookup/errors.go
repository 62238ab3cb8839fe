// File path: internal/lookup/errors.go
package lookup

import "errors"

// Sentinel errors forming the service's failure taxonomy. Handlers map
// these onto HTTP statuses with errors.Is; everything else is treated as an
// internal error.
var (
	// ErrBlankUsername rejects empty or whitespace-only usernames.
	ErrBlankUsername = errors.New("username must not be blank")
	// ErrLocationNotAllowed rejects a caller-supplied location that is not
	// on the country allow-list.
	ErrLocationNotAllowed = errors.New("location must be one of the allowed country names")
	// ErrNotFound means the provider authoritatively has nothing for a
	// never-before-seen username.
	ErrNotFound = errors.New("no location known for username")
	// ErrUpstream covers provider failures, provider timeouts, and provider
	// values that fail normalization.
	ErrUpstream = errors.New("location lookup failed")
	// ErrRateLimited means admission was denied by the sliding-window
	// limiter.
	ErrRateLimited = errors.New("rate limit exceeded, retry later")
	// ErrStoreUnavailable means the backing store was unreachable. It is
	// surfaced, never retried.
	ErrStoreUnavailable = errors.New("location store unavailable")
)
