// Agent HTTP handlers.
//
// This file exposes the endpoint that triggers the external report agent:
//   - POST /agent/run  (run the agent once and email the report)
//
// The agent is a separate process with its own API; this handler only
// enforces the daily run limit per caller and relays the agent's verdict.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mlipka/go-matchday-backend/internal/services"
)

// AgentRunRequest is the JSON payload for triggering an agent run.
type AgentRunRequest struct {
	// Email receives the generated report.
	Email    string `json:"email" binding:"required" example:"fan@example.com"`
	Language string `json:"language" example:"pl"`
}

// AgentRunResponse relays the agent's verdict.
type AgentRunResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// agentLimitMessage returns the agent-specific daily-limit copy.
func agentLimitMessage(lang string, authenticated bool) string {
	if lang == LangEnglish {
		if authenticated {
			return "You have reached the daily limit of agent runs. Come back tomorrow."
		}
		return "You have reached the daily limit of agent runs. Log in to get an additional run."
	}
	if authenticated {
		return "Osiągnąłeś dzienny limit uruchomień agenta. Wróć jutro."
	}
	return "Osiągnąłeś dzienny limit uruchomień agenta. Zaloguj się, aby uzyskać dodatkowe uruchomienie."
}

// RunAgent godoc
// @ID          runAgent
// @Summary     Trigger an agent run
// @Description Asks the report agent to compile today's report and email it to the given
// @Description address. Limited per caller per day; the run is only charged against the
// @Description limit when the agent reports success.
// @Tags        Agent
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.AgentRunRequest  true  "Recipient and language"
//
// @Success     200  {object}  handlers.AgentRunResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid email"
// @Failure     429  {object}  handlers.ErrorResponse  "Daily limit reached"
// @Failure     502  {object}  handlers.ErrorResponse  "Agent unreachable"
// @Router      /agent/run [post]
func (h *Handlers) RunAgent(c *gin.Context) {
	ctx := c.Request.Context()

	var req AgentRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email required")
		return
	}

	id := identityFrom(c)
	lang := resolveLanguage(c, req.Language)

	res, err := h.agentSvc.Run(ctx, id, req.Email, lang)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid email address")
		case errors.Is(err, services.ErrDailyLimitExceeded):
			fail(c, http.StatusTooManyRequests, ErrCodeLimitExceeded, agentLimitMessage(lang, id.Authenticated()))
		default:
			fail(c, http.StatusBadGateway, ErrCodeAgentFailed, "failed to reach the report agent")
		}
		return
	}

	ok(c, http.StatusOK, AgentRunResponse{Success: res.Success, Message: res.Message})
}
