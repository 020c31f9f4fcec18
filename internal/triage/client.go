// Package triage holds the boundary contract for the external AI triage
// collaborator. The inventory engine never calls it; the API exposes it as
// a passthrough so operators see the same Critical/High/Normal vocabulary
// the depletion forecaster uses.
package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Assessment is the collaborator's answer for one patient.
type Assessment struct {
	UrgencyLevel       string   `json:"urgency_level"`
	RecommendedActions []string `json:"recommended_actions"`
	Reasoning          string   `json:"reasoning"`
}

// Client calls the triage service over HTTP JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the given base URL. A zero timeout gets a
// 15 second default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Assess fetches the triage assessment for a patient.
func (c *Client) Assess(ctx context.Context, patientID string) (*Assessment, error) {
	endpoint := fmt.Sprintf("%s/triage/%s", c.baseURL, url.PathEscape(patientID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build triage request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("triage request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("triage service returned status %d", resp.StatusCode)
	}

	var assessment Assessment
	if err := json.NewDecoder(resp.Body).Decode(&assessment); err != nil {
		return nil, fmt.Errorf("failed to decode triage response: %w", err)
	}

	return &assessment, nil
}
