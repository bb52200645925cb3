// Fixture and prediction HTTP handlers.
//
// This file exposes read-only listings proxied from the football data
// provider:
//   - GET /fixtures?date=YYYY-MM-DD   (fixtures for a calendar day, cached)
//   - GET /fixtures/live              (matches in play, never cached)
//   - GET /predictions?date=          (match predictions for a day, cached)
//
// Fixture payloads pass through verbatim as provider JSON; the frontend
// already speaks that shape. Predictions are reshaped by the client layer.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mlipka/go-matchday-backend/internal/clients"
	"github.com/mlipka/go-matchday-backend/internal/services"
)

// PredictionsResponse wraps the prediction list for a day.
type PredictionsResponse struct {
	Matches []clients.Prediction `json:"matches"`
}

// GetFixtures godoc
// @ID          getFixtures
// @Summary     List fixtures for a date
// @Description Returns the provider's fixture payload for the given day.
// @Description Responses are cached server-side until the end of that day.
// @Tags        Fixtures
// @Produce     json
//
// @Param       date  query  string  true  "Calendar day"  format(date)  example(2025-06-01)
//
// @Success     200  {object}  object                  "Provider fixtures payload"
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or malformed date"
// @Failure     502  {object}  handlers.ErrorResponse  "Provider failure"
// @Router      /fixtures [get]
func (h *Handlers) GetFixtures(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date query parameter required (YYYY-MM-DD)")
		return
	}

	raw, err := h.fixtureSvc.FixturesByDate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date must be YYYY-MM-DD")
			return
		}
		fail(c, http.StatusBadGateway, ErrCodeFixturesFailed, "failed to fetch fixtures")
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// GetLiveFixtures godoc
// @ID          getLiveFixtures
// @Summary     List fixtures currently in play
// @Description Returns the provider's live payload. Never cached.
// @Tags        Fixtures
// @Produce     json
//
// @Success     200  {object}  object                  "Provider fixtures payload"
// @Failure     502  {object}  handlers.ErrorResponse  "Provider failure"
// @Router      /fixtures/live [get]
func (h *Handlers) GetLiveFixtures(c *gin.Context) {
	raw, err := h.fixtureSvc.LiveFixtures(c.Request.Context())
	if err != nil {
		fail(c, http.StatusBadGateway, ErrCodeFixturesFailed, "failed to fetch live fixtures")
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// GetPredictions godoc
// @ID          getPredictions
// @Summary     List match predictions for a date
// @Description Returns simplified prediction entries for the given day.
// @Description Responses are cached server-side until the end of that day.
// @Tags        Fixtures
// @Produce     json
//
// @Param       date  query  string  true  "Calendar day"  format(date)  example(2025-06-01)
//
// @Success     200  {object}  handlers.PredictionsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or malformed date"
// @Failure     502  {object}  handlers.ErrorResponse  "Provider failure"
// @Router      /predictions [get]
func (h *Handlers) GetPredictions(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date query parameter required (YYYY-MM-DD)")
		return
	}

	matches, err := h.fixtureSvc.PredictionsByDate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date must be YYYY-MM-DD")
			return
		}
		fail(c, http.StatusBadGateway, ErrCodePredictionsFailed, "failed to fetch predictions")
		return
	}

	ok(c, http.StatusOK, PredictionsResponse{Matches: matches})
}
