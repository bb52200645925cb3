package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// AgentRunner triggers the report agent, which researches upcoming fixtures
// and emails a report to the given address. The runner is a separate service;
// this client only proxies the request and relays its verdict.
type AgentRunner interface {
	Run(ctx context.Context, email, language string) (*AgentResult, error)
}

// AgentResult is the runner's reported outcome. Success gates the quota
// increment: a run the agent itself reports as failed must not consume the
// caller's daily allowance.
type AgentResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HTTPAgentRunner implements AgentRunner over the agent service's /run
// endpoint.
type HTTPAgentRunner struct {
	HTTP    *http.Client
	BaseURL string // e.g. http://localhost:5000
}

// NewHTTPAgentRunner builds a runner client over the injected HTTP client.
func NewHTTPAgentRunner(httpClient *http.Client, baseURL string) *HTTPAgentRunner {
	return &HTTPAgentRunner{HTTP: httpClient, BaseURL: baseURL}
}

// Run posts {email, language} to the runner and decodes its verdict.
// A non-2xx response surfaces the runner's detail message when present.
func (r *HTTPAgentRunner) Run(ctx context.Context, email, language string) (*AgentResult, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "language": language})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/run", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(body, &detail)
		if detail.Detail != "" {
			return nil, fmt.Errorf("agent runner: %s", detail.Detail)
		}
		return nil, fmt.Errorf("agent runner returned %d", resp.StatusCode)
	}

	var result AgentResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode agent response: %w", err)
	}
	return &result, nil
}
