// Package services – AnalysisService
//
// This file implements the analysis orchestrator: the state machine that
// turns "give me the analysis for this fixture" into either a database read
// or one bounded, quota-charged, lock-serialized call to the generation
// provider.
//
// Ordering is deliberate and load-bearing:
//
//   existence check → lock acquire → quota check → generate → persist →
//   quota increment → lock release
//
//   - The existence check runs before any lock or quota work so repeated
//     reads of a finished analysis cost nothing.
//   - The lock is taken before the quota is read so two concurrent requests
//     from one identity cannot both pass a stale count and both generate;
//     the loser of the lock race is told "in progress" immediately.
//   - The quota is incremented only after the generation succeeded and was
//     persisted; no failure path consumes the caller's allowance.
//   - All paths after a successful acquire release the lock through the
//     guard's deferred, idempotent Release.
//
// Live fixtures skip the existence check and persistence entirely: the live
// state has moved since any previous generation, so reuse is never correct.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mlipka/go-matchday-backend/internal/clients"
	"github.com/mlipka/go-matchday-backend/internal/domain"
	"github.com/mlipka/go-matchday-backend/internal/lock"
	"github.com/mlipka/go-matchday-backend/internal/prompt"
	"github.com/mlipka/go-matchday-backend/internal/quota"
	"github.com/mlipka/go-matchday-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AnalysisRepo defines the persistence contract required by AnalysisService.
type AnalysisRepo interface {
	// Get fetches the stored analysis for (fixtureID, language), or
	// repo.ErrNotFound.
	Get(ctx context.Context, db *gorm.DB, fixtureID, language string) (*domain.MatchAnalysis, error)
	// Upsert creates or overwrites the analysis for (fixtureID, language).
	Upsert(ctx context.Context, db *gorm.DB, fixtureID, language, analysis string) error
}

// GenerateRequest is one analysis generation request, already bound and
// language-resolved by the transport layer.
type GenerateRequest struct {
	FixtureID    string
	Language     string // "pl" or "en"
	IsLive       bool
	Prediction   string
	HomeTeam     string
	AwayTeam     string
	CurrentGoals *prompt.Score
	HomeStats    prompt.TeamStats
	AwayStats    prompt.TeamStats
}

// CheckResult reports whether an analysis exists and whether the identity
// could generate one right now.
type CheckResult struct {
	Exists      bool
	Analysis    string
	CanGenerate bool
	Used        int
	Limit       int
}

// AnalysisService coordinates existence checks, quota, locking, upstream
// generation, and persistence for match analyses.
type AnalysisService struct {
	DB    *gorm.DB
	Repo  AnalysisRepo
	Locks *lock.Locker
	Quota *quota.Counter
	Gen   clients.Generator

	// Checker optionally screens anonymous addresses; nil disables the gate.
	Checker clients.AddressChecker

	// GenerationTimeout bounds one provider call. Must be comfortably below
	// LockLease or a hung provider outlives its own lock.
	GenerationTimeout time.Duration
	// LockLease bounds how long a crashed holder can block its identity.
	LockLease time.Duration
	// DailyLimit is the analysis-scope quota ceiling per identity per day.
	DailyLimit int
}

// GetOrCreate returns the analysis for the request, generating and storing
// it if needed. See the package comment for the state machine and its
// ordering guarantees.
func (s *AnalysisService) GetOrCreate(ctx context.Context, id domain.Identity, req GenerateRequest) (string, error) {
	tr := otel.Tracer("services/AnalysisService")
	ctx, span := tr.Start(ctx, "GetOrCreate",
		trace.WithAttributes(
			attribute.String("fixture.id", req.FixtureID),
			attribute.String("language", req.Language),
			attribute.Bool("live", req.IsLive),
			attribute.String("identity", id.Key()),
		),
	)
	defer span.End()

	// Keys must be stable regardless of caller-supplied type, so the
	// fixture id is normalized once here and used everywhere below.
	fixtureID := strings.TrimSpace(req.FixtureID)
	if fixtureID == "" {
		return "", ErrMissingFixtureID
	}

	// 1) Existence short-circuit: a finished analysis is served without
	//    touching lock or quota. Live fixtures never reuse a previous text.
	if !req.IsLive {
		if rec, err := s.Repo.Get(ctx, s.DB, fixtureID, req.Language); err == nil {
			observeGeneration("cache_hit")
			return rec.Analysis, nil
		} else if !errors.Is(err, repo.ErrNotFound) {
			return "", err
		}
	}

	// 2) Optional proxy screen for anonymous callers. Lookup failures are
	//    ignored: the gate must not take the analysis path down with it.
	if s.Checker != nil && !id.Authenticated() {
		if isProxy, err := s.Checker.IsProxy(ctx, id.Value); err == nil && isProxy {
			observeGeneration("vpn_blocked")
			return "", ErrVPNBlocked
		}
	}

	// 3) One outstanding generation per identity. Fails closed when the
	//    store is down.
	guard, acquired := s.Locks.Acquire(ctx, id, s.LockLease)
	if !acquired {
		observeGeneration("lock_conflict")
		return "", ErrGenerationInProgress
	}
	// Release must survive a canceled request context; the lock would
	// otherwise linger for the rest of the lease.
	defer guard.Release(context.WithoutCancel(ctx))

	// 4) Quota check, after the lock so concurrent requests cannot both
	//    read a stale count.
	if s.Quota.Count(ctx, id, quota.ScopeAnalysis) >= s.DailyLimit {
		observeGeneration("limit_exceeded")
		return "", &DailyLimitError{Limit: s.DailyLimit}
	}

	// 5) Bounded generation. The race against the deadline guarantees the
	//    handler resumes even if the provider never answers.
	text, err := s.generate(ctx, prompt.Build(promptInput(req), req.Language))
	if err != nil {
		observeGeneration(outcomeForError(err))
		return "", err
	}
	if text == "" {
		observeGeneration("empty")
		return "", ErrEmptyAnalysis
	}

	// 6) Persist before charging quota: a text we failed to store is a
	//    failed generation from the caller's point of view.
	if !req.IsLive {
		if err := s.Repo.Upsert(ctx, s.DB, fixtureID, req.Language, text); err != nil {
			observeGeneration("persist_failed")
			return "", err
		}
	}
	s.Quota.Increment(ctx, id, quota.ScopeAnalysis)
	observeGeneration("generated")
	return text, nil
}

// Check reports whether the analysis exists and, if not, whether the
// identity still has budget to generate it. It takes no lock and charges
// nothing; it is the cheap read the frontend polls before offering the
// generate button.
func (s *AnalysisService) Check(ctx context.Context, id domain.Identity, fixtureID, language string, isLive bool) (*CheckResult, error) {
	tr := otel.Tracer("services/AnalysisService")
	ctx, span := tr.Start(ctx, "Check",
		trace.WithAttributes(
			attribute.String("fixture.id", fixtureID),
			attribute.String("language", language),
		),
	)
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return nil, ErrMissingFixtureID
	}

	if !isLive {
		if rec, err := s.Repo.Get(ctx, s.DB, fixtureID, language); err == nil {
			// Viewing an existing analysis is always allowed.
			return &CheckResult{Exists: true, Analysis: rec.Analysis, CanGenerate: true, Limit: s.DailyLimit}, nil
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
	}

	used := s.Quota.Count(ctx, id, quota.ScopeAnalysis)
	return &CheckResult{
		Exists:      false,
		CanGenerate: used < s.DailyLimit,
		Used:        used,
		Limit:       s.DailyLimit,
	}, nil
}

// generate runs one provider call raced against the configured deadline.
// The provider call runs in its own goroutine so that a provider that
// ignores ctx cannot block the handler; the goroutine is abandoned on
// timeout and its eventual result discarded.
func (s *AnalysisService) generate(ctx context.Context, p string) (string, error) {
	gctx, cancel := context.WithTimeout(ctx, s.GenerationTimeout)
	defer cancel()

	type genResult struct {
		text string
		err  error
	}
	ch := make(chan genResult, 1)
	go func() {
		text, err := s.Gen.Generate(gctx, p)
		ch <- genResult{text: strings.TrimSpace(text), err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			if errors.Is(res.err, context.DeadlineExceeded) {
				return "", ErrGenerationTimeout
			}
			return "", res.err
		}
		return res.text, nil
	case <-gctx.Done():
		if errors.Is(gctx.Err(), context.DeadlineExceeded) {
			return "", ErrGenerationTimeout
		}
		return "", gctx.Err()
	}
}

func promptInput(req GenerateRequest) prompt.Input {
	return prompt.Input{
		HomeTeam:     req.HomeTeam,
		AwayTeam:     req.AwayTeam,
		Prediction:   req.Prediction,
		IsLive:       req.IsLive,
		CurrentGoals: req.CurrentGoals,
		Home:         req.HomeStats,
		Away:         req.AwayStats,
	}
}

// outcomeForError buckets generation failures for the metrics counter.
func outcomeForError(err error) string {
	switch {
	case errors.Is(err, ErrGenerationTimeout):
		return "timeout"
	case errors.Is(err, clients.ErrRateLimited):
		return "upstream_rate_limited"
	case errors.Is(err, clients.ErrQuotaExhausted):
		return "upstream_quota"
	case errors.Is(err, clients.ErrInvalidCredentials):
		return "upstream_auth"
	default:
		return "error"
	}
}
