package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// AddressChecker reports whether a client address looks like a proxy/VPN
// exit. The check only applies to anonymous identities; it exists to stop
// trivial quota evasion by address rotation, not as a security control.
type AddressChecker interface {
	IsProxy(ctx context.Context, ip string) (bool, error)
}

// IPAPIClient implements AddressChecker over an ip-api.com style JSON
// endpoint: GET <base>/json/<ip>?fields=proxy,hosting.
type IPAPIClient struct {
	HTTP    *http.Client
	BaseURL string // e.g. http://ip-api.com
}

// NewIPAPIClient builds a checker over the injected HTTP client.
func NewIPAPIClient(httpClient *http.Client, baseURL string) *IPAPIClient {
	return &IPAPIClient{HTTP: httpClient, BaseURL: baseURL}
}

// IsProxy looks up the address. Errors are returned to the caller, which
// treats them as "not a proxy" (the lookup is an optional gate and must not
// take the analysis path down with it).
func (c *IPAPIClient) IsProxy(ctx context.Context, ip string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/json/"+ip+"?fields=proxy,hosting", nil)
	if err != nil {
		return false, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("address lookup returned %d", resp.StatusCode)
	}
	var verdict struct {
		Proxy   bool `json:"proxy"`
		Hosting bool `json:"hosting"`
	}
	if err := json.Unmarshal(body, &verdict); err != nil {
		return false, err
	}
	return verdict.Proxy || verdict.Hosting, nil
}
