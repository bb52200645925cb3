// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package). These codes provide clients with a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, unauthorized) mirror common HTTP status
//     semantics to aid interoperability.
//   - Domain-specific codes (e.g., generation_in_progress, limit_exceeded) are
//     reserved for business logic errors that cannot be conveyed by status alone.
//   - All error responses must include both an HTTP status and one of these codes.
//
// The frontend branches on the code, not the status: limit_exceeded and
// generation_in_progress both ride on 429 but render very different messages.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeGenerationInProgress = "generation_in_progress"
	ErrCodeLimitExceeded        = "limit_exceeded"
	ErrCodeGenerationTimeout    = "generation_timeout"
	ErrCodeUpstreamRateLimited  = "upstream_rate_limited"
	ErrCodeUpstreamQuota        = "upstream_quota"
	ErrCodeVPNBlocked           = "vpn_blocked"
	ErrCodeFixturesFailed       = "fixtures_failed"
	ErrCodePredictionsFailed    = "predictions_failed"
	ErrCodeAnalysisFailed       = "analysis_failed"
	ErrCodeAgentFailed          = "agent_failed"
	ErrCodeMethodNotAllowed     = "method_not_allowed"
)
