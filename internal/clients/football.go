package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// FootballProvider is the upstream fixture/odds data source. Payloads are
// treated as opaque JSON where the frontend consumes them unchanged
// (fixtures), and reshaped only where the upstream envelope is noisy
// (predictions).
type FootballProvider interface {
	// FixturesByDate returns the raw fixtures payload for a YYYY-MM-DD date.
	FixturesByDate(ctx context.Context, date string) (json.RawMessage, error)
	// LiveFixtures returns the raw payload of matches currently in play.
	LiveFixtures(ctx context.Context) (json.RawMessage, error)
	// PredictionsByDate returns simplified prediction entries for a date.
	PredictionsByDate(ctx context.Context, date string) ([]Prediction, error)
}

// Prediction is the simplified shape extracted from the prediction provider's
// match envelope; only the fields the application renders survive.
type Prediction struct {
	ID                    json.Number `json:"id"`
	HomeTeam              string      `json:"home_team"`
	AwayTeam              string      `json:"away_team"`
	Date                  string      `json:"date"`
	Prediction            string      `json:"prediction"`
	PredictionOdd         float64     `json:"prediction_odd"`
	PredictionProbability float64     `json:"prediction_probability"`
}

// RapidAPIConfig carries the per-host credentials for the two RapidAPI-style
// upstreams (fixtures and predictions are separate products with separate
// keys).
type RapidAPIConfig struct {
	FixturesBaseURL string // e.g. https://api-football-v1.p.rapidapi.com/v3
	FixturesKey     string
	FixturesHost    string // x-rapidapi-host value

	PredictionsBaseURL string // e.g. https://today-football-prediction.p.rapidapi.com
	PredictionsKey     string
	PredictionsHost    string
}

// RapidAPIClient implements FootballProvider against the RapidAPI upstreams.
type RapidAPIClient struct {
	HTTP *http.Client
	Cfg  RapidAPIConfig
}

// NewRapidAPIClient builds a provider over the injected HTTP client.
func NewRapidAPIClient(httpClient *http.Client, cfg RapidAPIConfig) *RapidAPIClient {
	return &RapidAPIClient{HTTP: httpClient, Cfg: cfg}
}

// FixturesByDate proxies GET /fixtures?date=YYYY-MM-DD.
func (c *RapidAPIClient) FixturesByDate(ctx context.Context, date string) (json.RawMessage, error) {
	q := url.Values{"date": {date}}
	return c.getRaw(ctx, c.Cfg.FixturesBaseURL+"/fixtures?"+q.Encode(), c.Cfg.FixturesKey, c.Cfg.FixturesHost)
}

// LiveFixtures proxies GET /fixtures?live=all.
func (c *RapidAPIClient) LiveFixtures(ctx context.Context) (json.RawMessage, error) {
	return c.getRaw(ctx, c.Cfg.FixturesBaseURL+"/fixtures?live=all", c.Cfg.FixturesKey, c.Cfg.FixturesHost)
}

// PredictionsByDate fetches the prediction list for a date and reduces each
// match entry to the fields the application uses.
func (c *RapidAPIClient) PredictionsByDate(ctx context.Context, date string) ([]Prediction, error) {
	q := url.Values{"date": {date}}
	raw, err := c.getRaw(ctx, c.Cfg.PredictionsBaseURL+"/predictions/list?"+q.Encode(), c.Cfg.PredictionsKey, c.Cfg.PredictionsHost)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Matches []Prediction `json:"matches"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode predictions payload: %w", err)
	}
	if envelope.Matches == nil {
		return []Prediction{}, nil
	}
	return envelope.Matches, nil
}

// getRaw performs an authenticated GET and returns the body verbatim.
// Non-2xx responses become errors carrying the upstream status.
func (c *RapidAPIClient) getRaw(ctx context.Context, rawURL, key, host string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-key", key)
	req.Header.Set("x-rapidapi-host", host)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("football provider returned %d", resp.StatusCode)
	}
	return json.RawMessage(body), nil
}
