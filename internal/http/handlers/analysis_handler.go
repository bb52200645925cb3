// Analysis HTTP handlers.
//
// This file exposes REST endpoints for match analyses:
//   - POST /analysis        (return the stored analysis or generate one)
//   - POST /analysis/check  (report existence and remaining daily budget)
//
// Handlers are transport-thin: they bind and normalize inputs (including the
// fixture id, which clients send as either a JSON string or number), resolve
// the request language, and translate service sentinels into HTTP responses.
// The daily-limit copy differs for authenticated and anonymous callers so
// the frontend can render it verbatim.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mlipka/go-matchday-backend/internal/clients"
	"github.com/mlipka/go-matchday-backend/internal/domain"
	"github.com/mlipka/go-matchday-backend/internal/prompt"
	"github.com/mlipka/go-matchday-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AnalysisService defines the analysis operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AnalysisService interface {
	// GetOrCreate returns the stored analysis or generates and stores one.
	GetOrCreate(ctx context.Context, id domain.Identity, req services.GenerateRequest) (string, error)
	// Check reports existence and whether the identity can generate now.
	Check(ctx context.Context, id domain.Identity, fixtureID, language string, isLive bool) (*services.CheckResult, error)
}

// FixtureService defines fixture and prediction listings consumed by HTTP
// handlers.
type FixtureService interface {
	FixturesByDate(ctx context.Context, date string) (json.RawMessage, error)
	LiveFixtures(ctx context.Context) (json.RawMessage, error)
	PredictionsByDate(ctx context.Context, date string) ([]clients.Prediction, error)
}

// AgentService defines the agent trigger operation consumed by HTTP handlers.
type AgentService interface {
	Run(ctx context.Context, id domain.Identity, email, language string) (*clients.AgentResult, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for analyses, fixtures, and agent runs.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	analysisSvc AnalysisService
	fixtureSvc  FixtureService
	agentSvc    AgentService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(analysisSvc AnalysisService, fixtureSvc FixtureService, agentSvc AgentService) *Handlers {
	return &Handlers{analysisSvc: analysisSvc, fixtureSvc: fixtureSvc, agentSvc: agentSvc}
}

// identityFrom extracts the caller identity resolved by upstream middleware.
// When no middleware ran (tests hitting a bare handler) it degrades to the
// loopback placeholder, matching the middleware's own fallback.
func identityFrom(c *gin.Context) domain.Identity {
	if v, ok := c.Get("identity"); ok {
		if id, ok := v.(domain.Identity); ok {
			return id
		}
	}
	return domain.IPIdentity("localhost")
}

//
// DTOs
//

// FixtureID accepts either a JSON string or a JSON number, normalized to its
// trimmed string form. Clients have historically sent both.
type FixtureID string

// UnmarshalJSON implements the string-or-number contract.
func (f *FixtureID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FixtureID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FixtureID(n.String())
		return nil
	}
	return errors.New("fixtureId must be a string or a number")
}

// AnalysisRequest is the JSON payload for generating (or fetching) a match
// analysis. Team statistics arrive pre-aggregated from the frontend, which
// already holds them for rendering the fixture page.
type AnalysisRequest struct {
	FixtureID    FixtureID        `json:"fixtureId"`
	Language     string           `json:"language" example:"pl"`
	IsLive       bool             `json:"isLive"`
	Prediction   string           `json:"prediction" example:"Roma to win or draw"`
	HomeTeam     string           `json:"homeTeam" example:"Roma"`
	AwayTeam     string           `json:"awayTeam" example:"Lazio"`
	CurrentGoals *prompt.Score    `json:"currentGoals,omitempty"`
	HomeStats    prompt.TeamStats `json:"homeStats"`
	AwayStats    prompt.TeamStats `json:"awayStats"`
}

// AnalysisResponse is the JSON envelope for a returned analysis.
type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}

// CheckRequest is the JSON payload for the existence/budget probe.
type CheckRequest struct {
	FixtureID FixtureID `json:"fixtureId"`
	Language  string    `json:"language" example:"pl"`
	IsLive    bool      `json:"isLive"`
}

// CheckResponse reports analysis existence and the caller's remaining
// generation budget.
type CheckResponse struct {
	Exists        bool   `json:"exists"`
	Analysis      string `json:"analysis,omitempty"`
	CanGenerate   bool   `json:"canGenerate"`
	LimitExceeded bool   `json:"limitExceeded"`
	CurrentLimit  int    `json:"currentLimit"`
	MaxLimit      int    `json:"maxLimit"`
	IsLoggedIn    bool   `json:"isLoggedIn"`
}

// limitMessage returns the daily-limit copy in the request language, with a
// login nudge for anonymous callers and an upsell for authenticated ones.
func limitMessage(lang string, authenticated bool, limit int) string {
	if lang == LangEnglish {
		if authenticated {
			return fmt.Sprintf("You have reached the daily limit of %d analyses. Come back tomorrow or soon unlock unlimited analyses.", limit)
		}
		return fmt.Sprintf("You have reached the daily limit of %d analyses. Log in or sign up to generate more.", limit)
	}
	if authenticated {
		return fmt.Sprintf("Osiągnąłeś dzienny limit %d analiz. Wróć jutro lub wkrótce wykup dostęp do nieskończonej liczby analiz.", limit)
	}
	return fmt.Sprintf("Osiągnąłeś dzienny limit %d analiz. Zaloguj się lub zarejestruj, aby wygenerować więcej analiz.", limit)
}

//
// Handlers
//

// PostAnalysis godoc
// @ID          postAnalysis
// @Summary     Get or generate a match analysis
// @Description Returns the stored analysis for the fixture and language if one exists.
// @Description Otherwise generates one, subject to the caller's daily limit and a
// @Description per-caller in-flight guard. Live analyses are always generated fresh.
// @Tags        Analysis
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.AnalysisRequest  true  "Fixture, prediction, and team statistics"
//
// @Success     200  {object}  handlers.AnalysisResponse  "Analysis text"
// @Failure     400  {object}  handlers.ErrorResponse     "Bad request"
// @Failure     402  {object}  handlers.ErrorResponse     "Upstream quota exhausted"
// @Failure     403  {object}  handlers.ErrorResponse     "Blocked network"
// @Failure     429  {object}  handlers.ErrorResponse     "Daily limit reached or generation in progress"
// @Failure     500  {object}  handlers.ErrorResponse     "Internal error"
// @Failure     504  {object}  handlers.ErrorResponse     "Generation timed out"
// @Router      /analysis [post]
func (h *Handlers) PostAnalysis(c *gin.Context) {
	ctx := c.Request.Context()

	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}
	if req.FixtureID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "missing fixtureId in request body")
		return
	}

	id := identityFrom(c)
	lang := resolveLanguage(c, req.Language)

	analysis, err := h.analysisSvc.GetOrCreate(ctx, id, services.GenerateRequest{
		FixtureID:    string(req.FixtureID),
		Language:     lang,
		IsLive:       req.IsLive,
		Prediction:   req.Prediction,
		HomeTeam:     req.HomeTeam,
		AwayTeam:     req.AwayTeam,
		CurrentGoals: req.CurrentGoals,
		HomeStats:    req.HomeStats,
		AwayStats:    req.AwayStats,
	})
	if err != nil {
		h.failAnalysis(c, id, lang, err)
		return
	}

	ok(c, http.StatusOK, AnalysisResponse{Analysis: analysis})
}

// failAnalysis maps analysis service sentinels onto HTTP responses.
func (h *Handlers) failAnalysis(c *gin.Context, id domain.Identity, lang string, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFixtureID):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "missing fixtureId in request body")
	case errors.Is(err, services.ErrGenerationInProgress):
		fail(c, http.StatusTooManyRequests, ErrCodeGenerationInProgress, "analysis generation already in progress, please wait")
	case errors.Is(err, services.ErrDailyLimitExceeded):
		limit := 0
		var dle *services.DailyLimitError
		if errors.As(err, &dle) {
			limit = dle.Limit
		}
		fail(c, http.StatusTooManyRequests, ErrCodeLimitExceeded, limitMessage(lang, id.Authenticated(), limit))
	case errors.Is(err, services.ErrGenerationTimeout):
		fail(c, http.StatusGatewayTimeout, ErrCodeGenerationTimeout, "the analysis is taking too long, please try again")
	case errors.Is(err, services.ErrVPNBlocked):
		fail(c, http.StatusForbidden, ErrCodeVPNBlocked, "analysis generation is not available over VPN or proxy connections")
	case errors.Is(err, clients.ErrRateLimited):
		fail(c, http.StatusTooManyRequests, ErrCodeUpstreamRateLimited, "rate limit exceeded, please try again later")
	case errors.Is(err, clients.ErrQuotaExhausted):
		fail(c, http.StatusPaymentRequired, ErrCodeUpstreamQuota, "generation quota exhausted, please try again later")
	case errors.Is(err, clients.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "generation provider rejected the configured credentials")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeAnalysisFailed, "failed to generate analysis")
	}
}

// CheckAnalysis godoc
// @ID          checkAnalysis
// @Summary     Check analysis existence and generation budget
// @Description Reports whether an analysis exists for the fixture and language, returning
// @Description it when found, and whether the caller may generate one right now. Never
// @Description consumes quota. On internal failure the probe fails open so the frontend
// @Description still offers the generate action.
// @Tags        Analysis
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CheckRequest  true  "Fixture reference"
//
// @Success     200  {object}  handlers.CheckResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /analysis/check [post]
func (h *Handlers) CheckAnalysis(c *gin.Context) {
	ctx := c.Request.Context()

	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}
	if req.FixtureID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "missing fixtureId in request body")
		return
	}

	id := identityFrom(c)
	lang := resolveLanguage(c, req.Language)

	res, err := h.analysisSvc.Check(ctx, id, string(req.FixtureID), lang, req.IsLive)
	if err != nil {
		if errors.Is(err, services.ErrMissingFixtureID) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "missing fixtureId in request body")
			return
		}
		// Fail open: a broken probe must not hide the generate action.
		ok(c, http.StatusOK, CheckResponse{CanGenerate: true, IsLoggedIn: id.Authenticated()})
		return
	}

	ok(c, http.StatusOK, CheckResponse{
		Exists:        res.Exists,
		Analysis:      res.Analysis,
		CanGenerate:   res.CanGenerate,
		LimitExceeded: !res.Exists && !res.CanGenerate,
		CurrentLimit:  res.Used,
		MaxLimit:      res.Limit,
		IsLoggedIn:    id.Authenticated(),
	})
}
