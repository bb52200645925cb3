// Package services – AgentService
//
// Forwards "run the agent" requests to the external agent process and
// enforces the agent-scope daily quota. Unlike analysis generation there is
// no lock here: the agent endpoint is idempotent on its side and the quota
// is so small (one run per day by default) that a duplicate concurrent run
// wastes at most one downstream call.
//
// The quota is charged only when the agent reports success, so a failed run
// does not burn the caller's single attempt.
package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mlipka/go-matchday-backend/internal/clients"
	"github.com/mlipka/go-matchday-backend/internal/domain"
	"github.com/mlipka/go-matchday-backend/internal/quota"
)

// AgentService triggers agent runs with per-identity daily limiting.
type AgentService struct {
	Runner clients.AgentRunner
	Quota  *quota.Counter

	// DailyLimit is the agent-scope quota ceiling per identity per day.
	DailyLimit int
	// Unlimited holds identity keys exempt from the daily limit.
	Unlimited map[string]struct{}
}

// NewAgentService constructs an AgentService. unlimited lists identity
// values (user ids) that bypass the daily limit.
func NewAgentService(r clients.AgentRunner, q *quota.Counter, limit int, unlimited []string) *AgentService {
	m := make(map[string]struct{}, len(unlimited))
	for _, u := range unlimited {
		if u = strings.TrimSpace(u); u != "" {
			m[domain.UserIdentity(u).Key()] = struct{}{}
		}
	}
	return &AgentService{Runner: r, Quota: q, DailyLimit: limit, Unlimited: m}
}

// Run triggers one agent run for the identity. email is the address the
// agent reports to; language selects the report language.
func (s *AgentService) Run(ctx context.Context, id domain.Identity, email, language string) (*clients.AgentResult, error) {
	tr := otel.Tracer("services/AgentService")
	ctx, span := tr.Start(ctx, "Run",
		trace.WithAttributes(
			attribute.String("identity", id.Key()),
			attribute.String("language", language),
		),
	)
	defer span.End()

	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	exempt := s.isUnlimited(id)
	if !exempt && s.Quota.Count(ctx, id, quota.ScopeAgent) >= s.DailyLimit {
		observeAgentRun("limit_exceeded")
		return nil, ErrDailyLimitExceeded
	}

	res, err := s.Runner.Run(ctx, email, language)
	if err != nil {
		observeAgentRun("error")
		return nil, err
	}
	if res.Success && !exempt {
		s.Quota.Increment(ctx, id, quota.ScopeAgent)
	}
	if res.Success {
		observeAgentRun("completed")
	} else {
		observeAgentRun("rejected")
	}
	return res, nil
}

func (s *AgentService) isUnlimited(id domain.Identity) bool {
	_, ok := s.Unlimited[id.Key()]
	return ok
}
