// Package clients wraps the external collaborators of the backend: the text
// generation provider, the fixture/prediction data provider, the agent
// runner, and the optional proxy/VPN lookup. Every client takes an injected
// *http.Client (or SDK client) so timeouts and transports are owned by the
// process, not by package-level state.
package clients

import "errors"

// Upstream error categories surfaced by the generation provider. Handlers
// map each to a distinct HTTP response so clients can render different
// messaging for "provider is throttling" vs. "provider account is out of
// budget" vs. "provider credentials are wrong".
var (
	// ErrRateLimited means the provider rejected the call with a transient
	// throttle; retryable later.
	ErrRateLimited = errors.New("generation provider rate limit exceeded")

	// ErrQuotaExhausted means the provider account has no remaining budget;
	// not retryable until the account is topped up.
	ErrQuotaExhausted = errors.New("generation provider quota exhausted")

	// ErrInvalidCredentials means the provider rejected our API key.
	ErrInvalidCredentials = errors.New("generation provider rejected credentials")
)
