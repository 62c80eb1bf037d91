// Package identity integrates the external identity-validity capability
// (SSN check). The capability is best-effort: callers get fail-closed
// behavior through FailClosed rather than propagated transport errors.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client calls the external validation endpoint over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the capability URL. The timeout is short:
// the pipeline should never stall on a slow validity check.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type validateRequest struct {
	SSN string `json:"ssn"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
}

// Valid posts the value to the capability and returns its verdict. Blank
// input is invalid without a network round trip.
func (c *Client) Valid(ctx context.Context, ssn string) (bool, error) {
	if ssn == "" {
		return false, nil
	}

	body, err := json.Marshal(validateRequest{SSN: ssn})
	if err != nil {
		return false, fmt.Errorf("marshal validate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/validate-ssn", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build validate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("call validity capability: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("validity capability returned status %d", resp.StatusCode)
	}

	var out validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode validity response: %w", err)
	}
	return out.Valid, nil
}
